package loan

import (
	"go-fuelops/internal/middleware"
	"go-fuelops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	loans := r.Group("/loans")
	loans.Use(middleware.AuthMiddleware())
	{
		loans.POST("", middleware.RBACAuthorize(rbacService, "loan", "create"), handler.Create)
		loans.GET("/:id", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.GetByID)
		loans.GET("/:id/transactions", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.GetTransactions)
		loans.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.GetByEmployee)
		loans.POST("/:id/payments", middleware.RBACAuthorize(rbacService, "loan", "update"), handler.RecordPayment)
		loans.PATCH("/:id/cancel", middleware.RBACAuthorize(rbacService, "loan", "manage"), handler.Cancel)
	}
}
