package loan_test

import (
	"context"
	"testing"

	"go-fuelops/internal/loan"
	loanerrors "go-fuelops/internal/loan/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeLoanRepo struct {
	createFn             func(ctx context.Context, account *loan.LoanAccount) error
	findByIDFn           func(ctx context.Context, companyID, id string) (*loan.LoanAccount, error)
	findActiveFn         func(ctx context.Context, companyID, employeeID string) ([]loan.LoanAccount, error)
	findAllFn            func(ctx context.Context, companyID, employeeID string) ([]loan.LoanAccount, error)
	applyPaydownFn       func(ctx context.Context, companyID, id string, amount decimal.Decimal) (loan.PaydownResult, error)
	cancelFn             func(ctx context.Context, companyID, id string) (int64, error)
	createTransactionFn  func(ctx context.Context, trx *loan.LoanTransaction) error
	listTransactionsFn   func(ctx context.Context, companyID, loanID string) ([]loan.LoanTransaction, error)
}

func (f *fakeLoanRepo) WithTx(tx *gorm.DB) loan.Repository { return f }

func (f *fakeLoanRepo) Create(ctx context.Context, account *loan.LoanAccount) error {
	return f.createFn(ctx, account)
}

func (f *fakeLoanRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*loan.LoanAccount, error) {
	return f.findByIDFn(ctx, companyID, id)
}

func (f *fakeLoanRepo) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]loan.LoanAccount, error) {
	return f.findActiveFn(ctx, companyID, employeeID)
}

func (f *fakeLoanRepo) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]loan.LoanAccount, error) {
	return f.findAllFn(ctx, companyID, employeeID)
}

func (f *fakeLoanRepo) ApplyPaydown(ctx context.Context, companyID, id string, amount decimal.Decimal) (loan.PaydownResult, error) {
	return f.applyPaydownFn(ctx, companyID, id, amount)
}

func (f *fakeLoanRepo) Cancel(ctx context.Context, companyID, id string) (int64, error) {
	return f.cancelFn(ctx, companyID, id)
}

func (f *fakeLoanRepo) CreateTransaction(ctx context.Context, trx *loan.LoanTransaction) error {
	return f.createTransactionFn(ctx, trx)
}

func (f *fakeLoanRepo) ListTransactions(ctx context.Context, companyID, loanID string) ([]loan.LoanTransaction, error) {
	return f.listTransactionsFn(ctx, companyID, loanID)
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

func TestCreateLoan(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("creates active account with full balance", func(t *testing.T) {
		db, _ := newTestDB(t)

		var saved *loan.LoanAccount
		repo := &fakeLoanRepo{
			createFn: func(ctx context.Context, account *loan.LoanAccount) error {
				saved = account
				return nil
			},
		}

		svc := loan.NewService(db, repo)
		resp, err := svc.Create(context.Background(), companyID, employeeID, loan.CreateLoanRequest{
			EmployeeID:       employeeID,
			Principal:        decimal.NewFromInt(10000),
			MonthlyDeduction: decimal.NewFromInt(2000),
			IssuedDate:       "2025-06-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, loan.StatusActive, saved.Status)
		assert.True(t, saved.RemainingBalance.Equal(saved.Principal))
		assert.Equal(t, "10000.00", resp.RemainingBalance)
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := loan.NewService(db, &fakeLoanRepo{})

		_, err := svc.Create(context.Background(), companyID, employeeID, loan.CreateLoanRequest{
			EmployeeID:       employeeID,
			Principal:        decimal.Zero,
			MonthlyDeduction: decimal.NewFromInt(2000),
			IssuedDate:       "2025-06-01",
		})

		assert.ErrorIs(t, err, loanerrors.ErrInvalidPrincipal)
	})

	t.Run("rejects deduction above principal", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := loan.NewService(db, &fakeLoanRepo{})

		_, err := svc.Create(context.Background(), companyID, employeeID, loan.CreateLoanRequest{
			EmployeeID:       employeeID,
			Principal:        decimal.NewFromInt(1000),
			MonthlyDeduction: decimal.NewFromInt(2000),
			IssuedDate:       "2025-06-01",
		})

		assert.ErrorIs(t, err, loanerrors.ErrInvalidDeduction)
	})
}

func TestRecordManualPayment(t *testing.T) {
	companyID := uuid.NewString()
	actorID := uuid.NewString()
	loanID := uuid.New()

	activeAccount := func() *loan.LoanAccount {
		return &loan.LoanAccount{
			ID:               loanID,
			CompanyID:        uuid.MustParse(companyID),
			EmployeeID:       uuid.New(),
			Principal:        decimal.NewFromInt(10000),
			MonthlyDeduction: decimal.NewFromInt(2000),
			RemainingBalance: decimal.NewFromInt(5000),
			Status:           loan.StatusActive,
		}
	}

	t.Run("applies paydown and records transaction", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var savedTrx *loan.LoanTransaction
		repo := &fakeLoanRepo{
			findByIDFn: func(ctx context.Context, _, _ string) (*loan.LoanAccount, error) {
				return activeAccount(), nil
			},
			applyPaydownFn: func(ctx context.Context, _, _ string, amount decimal.Decimal) (loan.PaydownResult, error) {
				return loan.PaydownResult{
					Applied:      1,
					BalanceAfter: decimal.NewFromInt(3000),
					Status:       loan.StatusActive,
				}, nil
			},
			createTransactionFn: func(ctx context.Context, trx *loan.LoanTransaction) error {
				savedTrx = trx
				return nil
			},
		}

		svc := loan.NewService(db, repo)
		resp, err := svc.RecordManualPayment(context.Background(), companyID, actorID, loanID.String(), loan.RecordPaymentRequest{
			Amount: decimal.NewFromInt(2000),
		})

		assert.NoError(t, err)
		assert.Equal(t, "3000.00", resp.RemainingBalance)
		assert.Equal(t, loan.TransactionSourceManual, savedTrx.Source)
		assert.Equal(t, "3000.00", savedTrx.BalanceAfter.StringFixed(2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("final payment completes the loan", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := &fakeLoanRepo{
			findByIDFn: func(ctx context.Context, _, _ string) (*loan.LoanAccount, error) {
				account := activeAccount()
				account.RemainingBalance = decimal.NewFromInt(1200)
				return account, nil
			},
			applyPaydownFn: func(ctx context.Context, _, _ string, amount decimal.Decimal) (loan.PaydownResult, error) {
				return loan.PaydownResult{
					Applied:      1,
					BalanceAfter: decimal.Zero,
					Status:       loan.StatusCompleted,
				}, nil
			},
			createTransactionFn: func(ctx context.Context, trx *loan.LoanTransaction) error {
				return nil
			},
		}

		svc := loan.NewService(db, repo)
		resp, err := svc.RecordManualPayment(context.Background(), companyID, actorID, loanID.String(), loan.RecordPaymentRequest{
			Amount: decimal.NewFromInt(1200),
		})

		assert.NoError(t, err)
		assert.Equal(t, loan.StatusCompleted, resp.Status)
		assert.Equal(t, "0.00", resp.RemainingBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects payment above balance", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeLoanRepo{
			findByIDFn: func(ctx context.Context, _, _ string) (*loan.LoanAccount, error) {
				return activeAccount(), nil
			},
		}

		svc := loan.NewService(db, repo)
		_, err := svc.RecordManualPayment(context.Background(), companyID, actorID, loanID.String(), loan.RecordPaymentRequest{
			Amount: decimal.NewFromInt(9999),
		})

		assert.ErrorIs(t, err, loanerrors.ErrPaymentExceedsBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects payment on completed loan", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeLoanRepo{
			findByIDFn: func(ctx context.Context, _, _ string) (*loan.LoanAccount, error) {
				account := activeAccount()
				account.Status = loan.StatusCompleted
				account.RemainingBalance = decimal.Zero
				return account, nil
			},
		}

		svc := loan.NewService(db, repo)
		_, err := svc.RecordManualPayment(context.Background(), companyID, actorID, loanID.String(), loan.RecordPaymentRequest{
			Amount: decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, loanerrors.ErrLoanNotActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelLoan(t *testing.T) {
	companyID := uuid.NewString()

	t.Run("cancels active loan", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := &fakeLoanRepo{
			cancelFn: func(ctx context.Context, _, _ string) (int64, error) { return 1, nil },
		}

		svc := loan.NewService(db, repo)
		assert.NoError(t, svc.Cancel(context.Background(), companyID, uuid.NewString()))
	})

	t.Run("not found when loan does not exist", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := &fakeLoanRepo{
			cancelFn: func(ctx context.Context, _, _ string) (int64, error) { return 0, nil },
			findByIDFn: func(ctx context.Context, _, _ string) (*loan.LoanAccount, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := loan.NewService(db, repo)
		assert.ErrorIs(t, svc.Cancel(context.Background(), companyID, uuid.NewString()), loanerrors.ErrLoanNotFound)
	})

	t.Run("conflict when loan already settled", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := &fakeLoanRepo{
			cancelFn: func(ctx context.Context, _, _ string) (int64, error) { return 0, nil },
			findByIDFn: func(ctx context.Context, _, _ string) (*loan.LoanAccount, error) {
				return &loan.LoanAccount{Status: loan.StatusCompleted}, nil
			},
		}

		svc := loan.NewService(db, repo)
		assert.ErrorIs(t, svc.Cancel(context.Background(), companyID, uuid.NewString()), loanerrors.ErrLoanNotActive)
	})
}

func TestDeductionFor(t *testing.T) {
	t.Run("caps at remaining balance", func(t *testing.T) {
		account := loan.LoanAccount{
			MonthlyDeduction: decimal.NewFromInt(2000),
			RemainingBalance: decimal.NewFromInt(1200),
		}
		assert.Equal(t, "1200.00", loan.DeductionFor(account).StringFixed(2))
	})

	t.Run("uses monthly deduction when balance suffices", func(t *testing.T) {
		account := loan.LoanAccount{
			MonthlyDeduction: decimal.NewFromInt(2000),
			RemainingBalance: decimal.NewFromInt(5000),
		}
		assert.Equal(t, "2000.00", loan.DeductionFor(account).StringFixed(2))
	})
}
