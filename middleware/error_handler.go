package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/logger"
)

// ErrorHandler maps errors attached to the gin context to transport
// responses. AppError carries its own HTTP status; anything else is a
// generic 500. Upstream provider details stay in the logs, not in the
// response body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*apperrors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			log.Warnw("Request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"client_ip", c.ClientIP(),
				"error_type", string(appError.Type),
				"error", appError.Error(),
				"status", statusCode,
			)

			response := gin.H{"error": appError.Message}
			if appError.Detail != "" && gin.IsDebugging() {
				response["detail"] = appError.Detail
			}
			c.JSON(statusCode, response)
			return
		}

		log.Errorw("Unexpected server error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
