package middlewares

import (
	"DentalClinic/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs every request once it has been served.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := utils.Logger.Info()
		if status >= 500 {
			event = utils.Logger.Error()
		} else if status >= 400 {
			event = utils.Logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
