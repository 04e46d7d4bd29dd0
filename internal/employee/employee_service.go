package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-fuelops/internal/employee/errors"
	"go-fuelops/internal/events"
	"go-fuelops/internal/messaging/kafka"
	"go-fuelops/internal/shared/contextutil"
	"go-fuelops/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const optionsCacheTTL = 5 * time.Minute

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	UpdateStatus(ctx context.Context, companyID, id string, req UpdateStatusRequest) (EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOption, error)
}

type service struct {
	db          *gorm.DB
	repo        Repository
	counterRepo counter.Repository
	outboxRepo  kafka.OutboxRepository
	redis       *redis.Client
	sf          singleflight.Group
	logger      *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, counterRepo counter.Repository, outboxRepo kafka.OutboxRepository, redisClient *redis.Client) Service {
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
		redis:       redisClient,
		logger:      zap.L().Named("employee_service"),
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	// Nomor urut per company, bukan global. Di luar tx: nomor yang hangus
	// karena rollback tidak masalah, yang penting tidak pernah dobel.
	seq, err := s.counterRepo.GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Employee{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		EmployeeNumber:   fmt.Sprintf("EMP-%05d", seq),
		FullName:         req.FullName,
		Department:       req.Department,
		Position:         req.Position,
		EmploymentStatus: StatusActive,
		JoinDate:         joinDate,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}

	event := events.EmployeeCreatedEvent{
		EventType:  "employee_created",
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: emp.ID.String(),
		CompanyID:  companyID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	s.logger.Info("employee created",
		zap.String("employee_id", emp.ID.String()),
		zap.String("employee_number", emp.EmployeeNumber),
	)

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]EmployeeResponse, 0, len(emps))
	for _, emp := range emps {
		resp = append(resp, mapToResponse(emp))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

func (s *service) UpdateStatus(ctx context.Context, companyID, id string, req UpdateStatusRequest) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	emp.EmploymentStatus = req.EmploymentStatus
	if err := s.repo.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*emp), nil
}

// GetOptions melayani dropdown FE; cache Redis + singleflight biar DB tidak
// kena stampede tiap halaman dibuka.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOption, error) {
	cacheKey := optionsCacheKey(companyID)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var options []EmployeeOption
			if jsonErr := json.Unmarshal(cached, &options); jsonErr == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindActiveByCompany(ctx, companyID, "")
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeOption, 0, len(emps))
		for _, emp := range emps {
			options = append(options, EmployeeOption{
				ID:             emp.ID.String(),
				EmployeeNumber: emp.EmployeeNumber,
				FullName:       emp.FullName,
				Department:     emp.Department,
			})
		}

		if s.redis != nil {
			if payload, jsonErr := json.Marshal(options); jsonErr == nil {
				if setErr := s.redis.Set(ctx, cacheKey, payload, optionsCacheTTL).Err(); setErr != nil {
					s.logger.Warn("failed to cache employee options", zap.Error(setErr))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, optionsCacheKey(companyID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate employee options cache", zap.Error(err))
	}
}

func optionsCacheKey(companyID string) string {
	return "employee:options:" + companyID
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               emp.ID.String(),
		EmployeeNumber:   emp.EmployeeNumber,
		FullName:         emp.FullName,
		Department:       emp.Department,
		Position:         emp.Position,
		EmploymentStatus: emp.EmploymentStatus,
		JoinDate:         emp.JoinDate.Format("2006-01-02"),
	}
}
