package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-fuelops/internal/attendance"
	"go-fuelops/internal/compensation"
	"go-fuelops/internal/employee"
	"go-fuelops/internal/events"
	"go-fuelops/internal/loan"
	"go-fuelops/internal/messaging/kafka"
	"go-fuelops/internal/messaging/kafka/consumer"
	"go-fuelops/internal/payroll"
	"go-fuelops/internal/shared/connection"
	"go-fuelops/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	compensationRepo := compensation.NewRepository(gormDB)
	compensationService := compensation.NewService(gormDB, compensationRepo)

	payslipDir := os.Getenv("PAYSLIP_DIR")
	if payslipDir == "" {
		payslipDir = "payslips"
	}
	payrollService := payroll.NewService(
		gormDB,
		payroll.NewRepository(gormDB),
		compensationRepo,
		attendance.NewRepository(gormDB),
		loan.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		counter.NewRepository(gormDB),
		kafka.NewOutboxRepository(gormDB),
		payslipDir,
	)

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "go-fuelops-compensation",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	settledReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollSettledTopic,
		GroupID:        "go-fuelops-payslip",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer settledReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, compensationService, logger)
	go consumer.ConsumePayrollSettled(ctx, settledReader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
