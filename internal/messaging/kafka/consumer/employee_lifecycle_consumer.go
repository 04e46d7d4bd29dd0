package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-fuelops/internal/compensation"
	compensationerrors "go-fuelops/internal/compensation/errors"
	"go-fuelops/internal/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle membuat profil kompensasi default (gaji 0) untuk
// setiap karyawan baru, supaya kalkulasi gaji tidak gagal karena profil
// belum sempat diisi admin.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	compensationService compensation.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		effectiveDate := time.Now().UTC().Format("2006-01-02")
		_, err = compensationService.Create(ctx, event.CompanyID, uuid.Nil.String(), compensation.CreateCompensationProfileRequest{
			EmployeeID:    event.EmployeeID,
			EffectiveDate: effectiveDate,
		})
		if err != nil {
			if errors.Is(err, compensationerrors.ErrInvalidEmployeeID) || isDuplicateProfile(err) {
				log.Warn("skipping employee_created event",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create default compensation profile failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default compensation profile created from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)
	}
}

func isDuplicateProfile(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
