package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/types"
)

// TenantMiddleware scopes the request to the tenant named in the X-Tenant-ID header.
// Requests without one run as the default tenant, which is what single-tenant
// deployments and local development use.
func TenantMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(types.HeaderTenantID)
		if tenantID == "" {
			tenantID = types.DefaultTenantID
		}
		userID := c.GetHeader(types.HeaderUserID)
		if userID == "" {
			userID = types.DefaultUserID
		}

		ctx := types.SetTenantID(c.Request.Context(), tenantID)
		ctx = types.SetUserID(ctx, userID)
		c.Request = c.Request.WithContext(ctx)

		log.Debugw("scoped request to tenant",
			"tenant_id", tenantID,
			"path", c.FullPath(),
		)
		c.Next()
	}
}
