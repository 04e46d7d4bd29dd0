package payroll

import (
	"go-fuelops/internal/middleware"
	"go-fuelops/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAllByPeriod)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payrolls.GET("/:id/payments", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetPaymentEvents)
		payrolls.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByEmployeeAndPeriod)
		payrolls.GET("/employee/:employeeId/ytd", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetYearToDate)

		payrolls.POST("/calculate", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Calculate)
		payrolls.POST("/batch", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.RunBatch)

		// Settlement memindahkan uang: idempotency key wajib di atas guard DB.
		payrolls.POST("/:id/settle", middleware.RBACAuthorize(rbacService, "payroll", "settle"), middleware.Idempotency(rdb), handler.Settle)
		payrolls.POST("/settle-batch", middleware.RBACAuthorize(rbacService, "payroll", "settle"), middleware.Idempotency(rdb), handler.SettleBatch)
		payrolls.PATCH("/:id/cancel", middleware.RBACAuthorize(rbacService, "payroll", "manage"), handler.Cancel)
	}
}
