package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"villa-backend/utils"
)

const claimsKey = "auth_claims"

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*utils.Claims, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireRole lets the request through only when the bearer token is
// valid and its role claim is one of roles. Missing or bad tokens get 401,
// a valid token with the wrong role gets 403.
func RequireRole(validator TokenValidator, logger *zap.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.HandleError(c, logger, utils.NewUnauthorizedError("Authorization token is required"))
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.HandleError(c, logger, utils.NewUnauthorizedError("Token expired"))
				return
			}
			utils.HandleError(c, logger, utils.WrapUnauthorizedError(err, "Invalid token"))
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			utils.HandleError(c, logger, utils.NewForbiddenError("Insufficient permissions"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

// ClaimsFrom returns the claims RequireRole stored, or nil on open routes.
func ClaimsFrom(c *gin.Context) *utils.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}
