package credit

import (
	"github.com/gin-gonic/gin"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy middleware.PolicyService) {
	own := r.Group("/credit-application")
	own.Use(middleware.AuthMiddleware())
	{
		own.GET("", middleware.Authorize(policy, "credit", "read"), handler.GetOwn)
		own.PUT("", middleware.Authorize(policy, "credit", "write"), handler.SaveDraft)
		own.POST("/submit", middleware.Authorize(policy, "credit", "submit"), handler.Submit)
		own.POST("/reopen-request", middleware.Authorize(policy, "credit", "submit"), handler.RequestReopen)
		own.GET("/pdf", middleware.Authorize(policy, "credit", "read"), handler.ExportOwnPDF)
	}

	admin := r.Group("/clients/:id/credit-application")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", middleware.Authorize(policy, "credit", "review"), handler.GetByClient)
		admin.GET("/pdf", middleware.Authorize(policy, "credit", "review"), handler.ExportClientPDF)
	}
}
