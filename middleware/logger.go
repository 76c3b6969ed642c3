package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamegalaxy/exchange/utils"
)

// RequestLogger logs every request with structured fields. 4xx logs as a
// warning, 5xx as an error.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := logrus.InfoLevel
		if status >= 500 {
			level = logrus.ErrorLevel
		} else if status >= 400 {
			level = logrus.WarnLevel
		}

		fields := logrus.Fields{
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        status,
			"duration_ms":   time.Since(start).Milliseconds(),
			"ip":            c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
			"query":         c.Request.URL.RawQuery,
			"response_size": c.Writer.Size(),
		}
		if userID, exists := c.Get("userID"); exists {
			fields["user_id"] = userID
		}

		utils.Log.WithFields(fields).Log(level, "HTTP Request")
	}
}

// ErrorLogger drains gin's error list after the handler ran.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			utils.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"type":   err.Type,
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Error("Request error occurred")
		}
	}
}
