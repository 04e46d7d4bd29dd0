package app

import (
	"os"
	"path/filepath"

	"go-fuelops/internal/attendance"
	"go-fuelops/internal/compensation"
	"go-fuelops/internal/employee"
	"go-fuelops/internal/loan"
	"go-fuelops/internal/messaging/kafka"
	"go-fuelops/internal/middleware"
	"go-fuelops/internal/payroll"
	"go-fuelops/internal/rbac"
	"go-fuelops/internal/rbac/infra"
	"go-fuelops/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	compensationRepo := compensation.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	attendanceService := attendance.NewService(gormDB, attendanceRepo)
	compensationService := compensation.NewService(gormDB, compensationRepo)
	employeeService := employee.NewService(gormDB, employeeRepo, counterRepo, outboxRepo, rdb)
	loanService := loan.NewService(gormDB, loanRepo)

	payslipDir := os.Getenv("PAYSLIP_DIR")
	if payslipDir == "" {
		payslipDir = "payslips"
	}
	payrollService := payroll.NewService(
		gormDB,
		payrollRepo,
		compensationRepo,
		attendanceRepo,
		loanRepo,
		employeeRepo,
		counterRepo,
		outboxRepo,
		payslipDir,
	)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	compensationHandler := compensation.NewHandler(compensationService)
	employeeHandler := employee.NewHandler(employeeService)
	loanHandler := loan.NewHandler(loanService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		compensation.RegisterRoutes(api, compensationHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		loan.RegisterRoutes(api, loanHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	router.Static("/payslips", payslipDir)

	return nil
}
