package handlers

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/vit0-9/ip-reverse-app/pkg/utils"
)

// RequestLogger logs one line per request. Health probes log at debug level.
func RequestLogger(logger *log.Logger, healthPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := log.InfoLevel
		if c.Request.URL.Path == healthPath {
			level = log.DebugLevel
		}
		logger.Log(level, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"peer", utils.PeerAddress(c.Request.RemoteAddr),
		)
	}
}
