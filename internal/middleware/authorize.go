package middleware

import (
	"net/http"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// PolicyService is a local interface so the middleware does not depend on the
// policy package directly; anything with Enforce fits.
type PolicyService interface {
	Enforce(role, resource, action string) (bool, error)
}

// Authorize checks the authenticated role against the policy for a
// resource:action pair. AuthMiddleware must run first.
func Authorize(policy PolicyService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := policy.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
