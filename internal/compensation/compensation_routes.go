package compensation

import (
	"go-fuelops/internal/middleware"
	"go-fuelops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	profiles := r.Group("/compensation-profiles")
	profiles.Use(middleware.AuthMiddleware())
	{
		profiles.GET("", middleware.RBACAuthorize(rbacService, "compensation", "read"), handler.GetAll)
		profiles.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "compensation", "read"), handler.GetActiveByEmployee)
		profiles.GET("/employee/:employeeId/history", middleware.RBACAuthorize(rbacService, "compensation", "read"), handler.GetHistoryByEmployee)
		profiles.POST("", middleware.RBACAuthorize(rbacService, "compensation", "create"), handler.Create)
	}
}
