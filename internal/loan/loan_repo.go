package loan

import (
	"context"

	"go-fuelops/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, account *LoanAccount) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LoanAccount, error)
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]LoanAccount, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]LoanAccount, error)
	ApplyPaydown(ctx context.Context, companyID, id string, amount decimal.Decimal) (PaydownResult, error)
	Cancel(ctx context.Context, companyID, id string) (int64, error)
	CreateTransaction(ctx context.Context, trx *LoanTransaction) error
	ListTransactions(ctx context.Context, companyID, loanID string) ([]LoanTransaction, error)
}

// PaydownResult carries the post-update state of a guarded paydown.
// Applied=0 berarti baris tidak ketemu: bukan ACTIVE, atau saldo kurang.
type PaydownResult struct {
	Applied      int64
	BalanceAfter decimal.Decimal
	Status       string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, account *LoanAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LoanAccount, error) {
	var account LoanAccount
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&account).Error
	return &account, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]LoanAccount, error) {
	var accounts []LoanAccount
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Order("issued_date ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]LoanAccount, error) {
	var accounts []LoanAccount
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("issued_date DESC").
		Find(&accounts).Error
	return accounts, err
}

// ApplyPaydown decrements the balance in a single guarded statement. The
// WHERE clause is the concurrency guard: only an ACTIVE account with enough
// balance is touched, and the status flips to COMPLETED in the same statement
// when the balance reaches zero.
func (r *repository) ApplyPaydown(ctx context.Context, companyID, id string, amount decimal.Decimal) (PaydownResult, error) {
	var row struct {
		RemainingBalance decimal.Decimal
		Status           string
	}

	res := r.db.WithContext(ctx).Raw(`
		UPDATE loan_accounts
		SET remaining_balance = remaining_balance - ?,
		    status = CASE WHEN remaining_balance - ? <= 0 THEN 'COMPLETED' ELSE status END,
		    end_date = CASE WHEN remaining_balance - ? <= 0 THEN now() ELSE end_date END,
		    updated_at = now()
		WHERE id = ?
		  AND company_id = ?
		  AND status = 'ACTIVE'
		  AND remaining_balance >= ?
		RETURNING remaining_balance, status
	`, amount, amount, amount, id, companyID, amount).Scan(&row)

	if res.Error != nil {
		return PaydownResult{}, res.Error
	}

	return PaydownResult{
		Applied:      res.RowsAffected,
		BalanceAfter: row.RemainingBalance,
		Status:       row.Status,
	}, nil
}

func (r *repository) Cancel(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LoanAccount{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("status = ?", StatusActive).
		Update("status", StatusCancelled)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateTransaction(ctx context.Context, trx *LoanTransaction) error {
	return r.db.WithContext(ctx).Create(trx).Error
}

func (r *repository) ListTransactions(ctx context.Context, companyID, loanID string) ([]LoanTransaction, error) {
	var trxs []LoanTransaction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("loan_id = ?", loanID).
		Order("created_at ASC").
		Find(&trxs).Error
	return trxs, err
}
