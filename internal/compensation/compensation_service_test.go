package compensation_test

import (
	"context"
	"testing"

	"go-fuelops/internal/compensation"
	compensationerrors "go-fuelops/internal/compensation/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeCompensationRepo struct {
	createFn      func(ctx context.Context, profile *compensation.CompensationProfile) error
	retireFn      func(ctx context.Context, companyID, employeeID string) error
	findActiveFn  func(ctx context.Context, companyID, employeeID string) (*compensation.CompensationProfile, error)
	findHistoryFn func(ctx context.Context, companyID, employeeID string) ([]compensation.CompensationProfile, error)
}

func (f *fakeCompensationRepo) WithTx(tx *gorm.DB) compensation.Repository { return f }

func (f *fakeCompensationRepo) Create(ctx context.Context, profile *compensation.CompensationProfile) error {
	return f.createFn(ctx, profile)
}

func (f *fakeCompensationRepo) RetireActiveByEmployee(ctx context.Context, companyID, employeeID string) error {
	return f.retireFn(ctx, companyID, employeeID)
}

func (f *fakeCompensationRepo) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*compensation.CompensationProfile, error) {
	return f.findActiveFn(ctx, companyID, employeeID)
}

func (f *fakeCompensationRepo) FindHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]compensation.CompensationProfile, error) {
	return f.findHistoryFn(ctx, companyID, employeeID)
}

func (f *fakeCompensationRepo) FindAllActiveByCompany(ctx context.Context, companyID string) ([]compensation.CompensationProfile, error) {
	return nil, nil
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func validRequest(employeeID string) compensation.CreateCompensationProfileRequest {
	return compensation.CreateCompensationProfileRequest{
		EmployeeID:         employeeID,
		EffectiveDate:      "2025-07-01",
		BasicSalary:        decimal.NewFromInt(50000),
		TransportAllowance: decimal.NewFromInt(5000),
		MealAllowance:      decimal.NewFromInt(3000),
		EpfEmployeePercent: decimal.NewFromInt(8),
		EpfEmployerPercent: decimal.NewFromInt(12),
		EtfPercent:         decimal.NewFromInt(3),
	}
}

func TestCreateProfile(t *testing.T) {
	companyID := uuid.NewString()
	actorID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("retires previous active profile in same transaction", func(t *testing.T) {
		retired := false
		var created *compensation.CompensationProfile
		repo := &fakeCompensationRepo{
			retireFn: func(ctx context.Context, _, empID string) error {
				assert.Equal(t, employeeID, empID)
				retired = true
				return nil
			},
			createFn: func(ctx context.Context, profile *compensation.CompensationProfile) error {
				assert.True(t, retired, "retire harus jalan sebelum insert")
				created = profile
				return nil
			},
		}

		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		svc := compensation.NewService(db, repo)
		resp, err := svc.Create(context.Background(), companyID, actorID, validRequest(employeeID))

		assert.NoError(t, err)
		assert.Equal(t, compensation.StatusActive, created.Status)
		assert.Equal(t, "50000.00", resp.BasicSalary)
		// multiplier kosong jatuh ke default
		assert.Equal(t, "1.50", resp.OvertimeMultiplier)
		assert.Equal(t, "2.00", resp.HolidayOvertimeMultiplier)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects negative allowance", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := compensation.NewService(db, &fakeCompensationRepo{})

		req := validRequest(employeeID)
		req.MealAllowance = decimal.NewFromInt(-1)

		_, err := svc.Create(context.Background(), companyID, actorID, req)
		assert.ErrorIs(t, err, compensationerrors.ErrNegativeAmount)
	})

	t.Run("rejects percent above 100", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := compensation.NewService(db, &fakeCompensationRepo{})

		req := validRequest(employeeID)
		req.TaxPercent = decimal.NewFromInt(101)

		_, err := svc.Create(context.Background(), companyID, actorID, req)
		assert.ErrorIs(t, err, compensationerrors.ErrInvalidPercent)
	})

	t.Run("rejects multiplier below one", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := compensation.NewService(db, &fakeCompensationRepo{})

		req := validRequest(employeeID)
		req.OvertimeMultiplier = decimal.RequireFromString("0.5")

		_, err := svc.Create(context.Background(), companyID, actorID, req)
		assert.ErrorIs(t, err, compensationerrors.ErrInvalidMultiplier)
	})

	t.Run("rejects malformed effective date", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := compensation.NewService(db, &fakeCompensationRepo{})

		req := validRequest(employeeID)
		req.EffectiveDate = "07/01/2025"

		_, err := svc.Create(context.Background(), companyID, actorID, req)
		assert.ErrorIs(t, err, compensationerrors.ErrInvalidDateFormat)
	})
}

func TestGetActiveByEmployee(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("maps active profile", func(t *testing.T) {
		repo := &fakeCompensationRepo{
			findActiveFn: func(ctx context.Context, _, _ string) (*compensation.CompensationProfile, error) {
				return &compensation.CompensationProfile{
					ID:          uuid.New(),
					EmployeeID:  uuid.MustParse(employeeID),
					BasicSalary: decimal.NewFromInt(50000),
					Status:      compensation.StatusActive,
				}, nil
			},
		}
		db, _ := newTestDB(t)
		svc := compensation.NewService(db, repo)

		resp, err := svc.GetActiveByEmployee(context.Background(), companyID, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, compensation.StatusActive, resp.Status)
	})

	t.Run("not found when no active profile", func(t *testing.T) {
		repo := &fakeCompensationRepo{
			findActiveFn: func(ctx context.Context, _, _ string) (*compensation.CompensationProfile, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		db, _ := newTestDB(t)
		svc := compensation.NewService(db, repo)

		_, err := svc.GetActiveByEmployee(context.Background(), companyID, employeeID)
		assert.ErrorIs(t, err, compensationerrors.ErrProfileNotFound)
	})
}
