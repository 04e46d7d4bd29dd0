package employee

import (
	"go-fuelops/internal/middleware"
	"go-fuelops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	emps := r.Group("/employees")
	emps.Use(middleware.AuthMiddleware())
	{
		emps.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetAll)
		emps.GET("/options", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetOptions)
		emps.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetByID)
		emps.POST("", middleware.RBACAuthorize(rbacService, "employee", "create"), handler.Create)
		emps.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.UpdateStatus)
	}
}
