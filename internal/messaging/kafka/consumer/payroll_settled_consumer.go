package consumer

import (
	"context"
	"encoding/json"

	"go-fuelops/internal/events"
	"go-fuelops/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollSettled merender slip gaji PDF di luar jalur request.
// Kegagalan render tidak meng-commit offset, jadi akan dicoba ulang.
func ConsumePayrollSettled(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_settled")
	log.Info("payroll settled consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll settled consumer stopped")
				return
			}
			log.Error("fetch payroll settled message failed", zap.Error(err))
			continue
		}

		var event events.PayrollSettledEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_settled event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		url, err := payrollService.GeneratePayslip(ctx, event.CompanyID, event.PayrollID)
		if err != nil {
			log.Error("generate payslip failed",
				zap.String("payroll_id", event.PayrollID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll settled message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated",
			zap.String("payroll_id", event.PayrollID),
			zap.String("url", url),
		)
	}
}
