package employee_test

import (
	"context"
	"encoding/json"
	"testing"

	"go-fuelops/internal/employee"
	employeeerrors "go-fuelops/internal/employee/errors"
	"go-fuelops/internal/events"
	"go-fuelops/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeEmployeeRepo struct {
	createFn     func(ctx context.Context, emp *employee.Employee) error
	updateFn     func(ctx context.Context, emp *employee.Employee) error
	findByIDFn   func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	findAllFn    func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findActiveFn func(ctx context.Context, companyID, department string) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp *employee.Employee) error {
	return f.createFn(ctx, emp)
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp *employee.Employee) error {
	return f.updateFn(ctx, emp)
}

func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, companyID, id)
}

func (f *fakeEmployeeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.findAllFn(ctx, companyID)
}

func (f *fakeEmployeeRepo) FindActiveByCompany(ctx context.Context, companyID, department string) ([]employee.Employee, error) {
	return f.findActiveFn(ctx, companyID, department)
}

type fakeCounterRepo struct {
	next int64
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
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

func TestCreateEmployee(t *testing.T) {
	companyID := uuid.NewString()

	t.Run("assigns sequential number and writes outbox event", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var saved *employee.Employee
		repo := &fakeEmployeeRepo{
			createFn: func(ctx context.Context, emp *employee.Employee) error {
				saved = emp
				return nil
			},
		}
		outbox := &fakeOutboxRepo{}

		svc := employee.NewService(db, repo, &fakeCounterRepo{}, outbox, nil)
		resp, err := svc.Create(context.Background(), companyID, employee.CreateEmployeeRequest{
			FullName:   "Budi Santoso",
			Department: "SPBU-01",
			Position:   "Operator",
			JoinDate:   "2025-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-00001", saved.EmployeeNumber)
		assert.Equal(t, employee.StatusActive, resp.EmploymentStatus)

		if assert.Len(t, outbox.created, 1) {
			assert.Equal(t, events.EmployeeCreatedTopic, outbox.created[0].Topic)
			assert.Equal(t, "employee_created", outbox.created[0].EventType)

			var event events.EmployeeCreatedEvent
			assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
			assert.Equal(t, saved.ID.String(), event.EmployeeID)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects malformed join date", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := employee.NewService(db, &fakeEmployeeRepo{}, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

		_, err := svc.Create(context.Background(), companyID, employee.CreateEmployeeRequest{
			FullName:   "Budi Santoso",
			Department: "SPBU-01",
			JoinDate:   "15/01/2025",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateFormat)
	})
}

func TestUpdateEmployeeStatus(t *testing.T) {
	companyID := uuid.NewString()

	t.Run("marks employee inactive", func(t *testing.T) {
		db, _ := newTestDB(t)

		emp := &employee.Employee{
			ID:               uuid.New(),
			CompanyID:        uuid.MustParse(companyID),
			EmployeeNumber:   "EMP-00007",
			FullName:         "Siti Rahma",
			Department:       "SPBU-02",
			EmploymentStatus: employee.StatusActive,
		}
		repo := &fakeEmployeeRepo{
			findByIDFn: func(ctx context.Context, _, _ string) (*employee.Employee, error) {
				return emp, nil
			},
			updateFn: func(ctx context.Context, e *employee.Employee) error { return nil },
		}

		svc := employee.NewService(db, repo, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)
		resp, err := svc.UpdateStatus(context.Background(), companyID, emp.ID.String(), employee.UpdateStatusRequest{
			EmploymentStatus: employee.StatusInactive,
		})

		assert.NoError(t, err)
		assert.Equal(t, employee.StatusInactive, resp.EmploymentStatus)
	})

	t.Run("not found for unknown employee", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := &fakeEmployeeRepo{
			findByIDFn: func(ctx context.Context, _, _ string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := employee.NewService(db, repo, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)
		_, err := svc.UpdateStatus(context.Background(), companyID, uuid.NewString(), employee.UpdateStatusRequest{
			EmploymentStatus: employee.StatusInactive,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestGetOptions(t *testing.T) {
	companyID := uuid.NewString()

	t.Run("returns slim options for active employees", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := &fakeEmployeeRepo{
			findActiveFn: func(ctx context.Context, _, department string) ([]employee.Employee, error) {
				assert.Empty(t, department)
				return []employee.Employee{
					{ID: uuid.New(), EmployeeNumber: "EMP-00001", FullName: "Budi Santoso", Department: "SPBU-01"},
					{ID: uuid.New(), EmployeeNumber: "EMP-00002", FullName: "Siti Rahma", Department: "SPBU-02"},
				}, nil
			},
		}

		svc := employee.NewService(db, repo, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)
		options, err := svc.GetOptions(context.Background(), companyID)

		assert.NoError(t, err)
		assert.Len(t, options, 2)
		assert.Equal(t, "EMP-00001", options[0].EmployeeNumber)
	})
}
