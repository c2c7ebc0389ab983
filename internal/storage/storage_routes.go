package storage

import (
	"github.com/gin-gonic/gin"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *UploadHandler, policy middleware.PolicyService) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("/:slot", middleware.Authorize(policy, "upload", "write"), handler.Upload)
	}
}

// RegisterFileServer serves stored documents straight from disk at the
// configured public base URL.
func RegisterFileServer(e *gin.Engine, baseURL, dir string) {
	e.Static(baseURL, dir)
}
