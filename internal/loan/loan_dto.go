package loan

import "github.com/shopspring/decimal"

type CreateLoanRequest struct {
	EmployeeID       string          `json:"employee_id" binding:"required,uuid"`
	LoanType         string          `json:"loan_type" binding:"omitempty,oneof=ADVANCE LOAN OTHER"`
	Principal        decimal.Decimal `json:"principal" binding:"required"`
	MonthlyDeduction decimal.Decimal `json:"monthly_deduction" binding:"required"`
	IssuedDate       string          `json:"issued_date" binding:"required"`
	Notes            *string         `json:"notes"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type LoanResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	LoanType         string  `json:"loan_type"`
	Principal        string  `json:"principal"`
	MonthlyDeduction string  `json:"monthly_deduction"`
	RemainingBalance string  `json:"remaining_balance"`
	Status           string  `json:"status"`
	IssuedDate       string  `json:"issued_date"`
	EndDate          *string `json:"end_date,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

type LoanTransactionResponse struct {
	ID           string  `json:"id"`
	LoanID       string  `json:"loan_id"`
	PayrollID    *string `json:"payroll_id,omitempty"`
	Amount       string  `json:"amount"`
	BalanceAfter string  `json:"balance_after"`
	Source       string  `json:"source"`
	CreatedAt    string  `json:"created_at"`
}
