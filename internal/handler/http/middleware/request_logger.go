package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// RequestLogger logs one line per request, and the errors handlers attached to it.
func RequestLogger(logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		for _, e := range c.Errors {
			logger.Errorf("%s %s: %v", c.Request.Method, path, e.Err)
		}
		if status >= 500 {
			logger.Warnf("%s %s -> %d (%s)", c.Request.Method, path, status, time.Since(start))
			return
		}
		logger.Debugf("%s %s -> %d (%s)", c.Request.Method, path, status, time.Since(start))
	}
}
