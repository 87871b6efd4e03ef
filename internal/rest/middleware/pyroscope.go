package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
	"github.com/harvestlane/backoffice/internal/config"
)

// PyroscopeMiddleware labels profiles with the route being served. Labels use the
// route template, never order or fee ids.
func PyroscopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Pyroscope.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		labels := pyroscope.Labels(
			"method", c.Request.Method,
			"endpoint", endpoint,
		)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Next()
		})
	}
}
