package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"villa-backend/utils"
)

// APIVersion rejects any :version path segment not in supported.
func APIVersion(supported ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(supported))
	for _, v := range supported {
		allowed[v] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[c.Param("version")]; !ok {
			utils.JSONError(c, http.StatusNotFound, "Unsupported API version")
			return
		}
		c.Next()
	}
}
