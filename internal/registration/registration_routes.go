package registration

import (
	"github.com/gin-gonic/gin"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy middleware.PolicyService) {
	own := r.Group("/registration")
	own.Use(middleware.AuthMiddleware())
	{
		own.GET("", middleware.Authorize(policy, "registration", "read"), handler.GetOwn)
		own.PUT("", middleware.Authorize(policy, "registration", "write"), handler.SaveDraft)
		own.POST("/validate", middleware.Authorize(policy, "registration", "write"), handler.ValidateStep)
		own.POST("/submit", middleware.Authorize(policy, "registration", "submit"), handler.Submit)
		own.POST("/reopen-request", middleware.Authorize(policy, "registration", "submit"), handler.RequestReopen)
		own.GET("/pdf", middleware.Authorize(policy, "registration", "read"), handler.ExportOwnPDF)
	}

	admin := r.Group("/clients/:id/registration")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", middleware.Authorize(policy, "registration", "review"), handler.GetByClient)
		admin.PUT("/office-use", middleware.Authorize(policy, "registration", "review"), handler.UpdateOfficeUse)
		admin.GET("/pdf", middleware.Authorize(policy, "registration", "review"), handler.ExportClientPDF)
	}
}
