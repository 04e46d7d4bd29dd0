package attendance

import (
	"go-fuelops/internal/middleware"
	"go-fuelops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	att := r.Group("/attendances")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("/clock-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.ClockIn)
		att.POST("/clock-out", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.ClockOut)
		att.POST("/mark-day", middleware.RBACAuthorize(rbacService, "attendance", "manage"), handler.MarkDay)
		att.POST("/overtime", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.RecordOvertime)
		att.PATCH("/overtime/:id/approve", middleware.RBACAuthorize(rbacService, "attendance", "manage"), handler.ApproveOvertime)
	}
}
