package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"villa-backend/dtos"
)

const InternalErrorMessage = "An unexpected error occurred"

func JSONSuccess(c *gin.Context, code int, data any) {
	c.JSON(code, dtos.APIResponse{
		StatusCode:    code,
		IsSuccessful:  true,
		ErrorMessages: []string{},
		Result:        data,
	})
}

func JSONError(c *gin.Context, code int, messages ...string) {
	if messages == nil {
		messages = []string{}
	}
	c.AbortWithStatusJSON(code, dtos.APIResponse{
		StatusCode:    code,
		IsSuccessful:  false,
		ErrorMessages: messages,
	})
}

// HandleError is the one place an error becomes an HTTP response. Typed
// errors keep their status and messages; everything else is logged with
// full detail and reported to the client as an opaque 500.
func HandleError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			logger.Warn("request rejected",
				zap.String("path", c.FullPath()),
				zap.Int("status", appErr.StatusCode),
				zap.Error(appErr.Err),
			)
		}
		JSONError(c, appErr.StatusCode, appErr.Messages...)
		return
	}

	logger.Error("unhandled error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	JSONError(c, http.StatusInternalServerError, InternalErrorMessage)
}
