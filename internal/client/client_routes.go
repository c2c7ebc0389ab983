package client

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy middleware.PolicyService, rdb *redis.Client) {
	admin := r.Group("/clients")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.POST("", middleware.Authorize(policy, "client", "create"), middleware.Idempotency(rdb), handler.Create)
		admin.GET("", middleware.Authorize(policy, "client", "read"), handler.List)
		admin.GET("/:id", middleware.Authorize(policy, "client", "read"), handler.Get)
		admin.GET("/:id/stream", middleware.Authorize(policy, "client", "read"), handler.StreamClientProfile)
		admin.POST("/:id/credentials-sent", middleware.Authorize(policy, "client", "update"), handler.MarkCredentialsSent)
		admin.PUT("/:id/credit-access", middleware.Authorize(policy, "client", "update"), handler.SetCreditAccess)
		admin.POST("/:id/reopen-approval", middleware.Authorize(policy, "client", "update"), handler.ApproveReopen)
		admin.POST("/:id/credit-reopen-approval", middleware.Authorize(policy, "client", "update"), handler.ApproveCreditReopen)
		admin.DELETE("/:id", middleware.Authorize(policy, "client", "delete"), middleware.Idempotency(rdb), handler.Delete)
	}

	own := r.Group("/profile")
	own.Use(middleware.AuthMiddleware())
	{
		own.GET("", middleware.Authorize(policy, "profile", "read"), handler.GetOwnProfile)
		own.GET("/stream", middleware.Authorize(policy, "profile", "read"), handler.StreamOwnProfile)
		own.POST("/credit-request", middleware.Authorize(policy, "credit", "request"), handler.RequestCreditAccess)
	}
}
