package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

const (
	TypeAdvance = "ADVANCE"
	TypeLoan    = "LOAN"
	TypeOther   = "OTHER"
)

const (
	TransactionSourcePayroll = "PAYROLL"
	TransactionSourceManual  = "MANUAL"
)

// LoanAccount adalah kasbon karyawan. Saldo turun lewat potongan gaji
// atau pembayaran manual; begitu nol statusnya COMPLETED.
type LoanAccount struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID        uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID       uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;index"`
	LoanType         string          `gorm:"column:loan_type;type:varchar(20);not null;default:LOAN"`
	Principal        decimal.Decimal `gorm:"column:principal;type:numeric(14,2);not null"`
	MonthlyDeduction decimal.Decimal `gorm:"column:monthly_deduction;type:numeric(14,2);not null"`
	RemainingBalance decimal.Decimal `gorm:"column:remaining_balance;type:numeric(14,2);not null"`
	Status           string          `gorm:"column:status;type:varchar(20);not null;default:ACTIVE"`
	IssuedDate       time.Time       `gorm:"column:issued_date;type:date;not null"`
	EndDate          *time.Time      `gorm:"column:end_date;type:date"`
	Notes            *string         `gorm:"column:notes;type:text"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

func (LoanAccount) TableName() string {
	return "loan_accounts"
}

// LoanTransaction is an append-only audit row, one per paydown.
type LoanTransaction struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	LoanID       uuid.UUID       `gorm:"column:loan_id;type:uuid;not null;index"`
	PayrollID    *uuid.UUID      `gorm:"column:payroll_id;type:uuid"`
	Amount       decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:numeric(14,2);not null"`
	Source       string          `gorm:"column:source;type:varchar(20);not null"`
	RecordedBy   *uuid.UUID      `gorm:"column:recorded_by;type:uuid"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
}

func (LoanTransaction) TableName() string {
	return "loan_transactions"
}
