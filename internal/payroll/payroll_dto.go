package payroll

import "github.com/shopspring/decimal"

type CalculateRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	PayPeriod  string `json:"pay_period" binding:"required"`

	// OvertimeAmount opsional: kalau diisi, jam lembur tidak dikalikan tarif.
	OvertimeAmount  *decimal.Decimal `json:"overtime_amount"`
	OtherDeductions decimal.Decimal  `json:"other_deductions"`
}

type RunBatchRequest struct {
	PayPeriod  string `json:"pay_period" binding:"required"`
	Department string `json:"department"`
	Force      bool   `json:"force"`
}

type SettleRequest struct {
	PaymentDate   string  `json:"payment_date" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=BANK_TRANSFER CASH CHEQUE"`
	ReferenceNo   string  `json:"reference_no"`
	Notes         *string `json:"notes"`
}

type SettleBatchRequest struct {
	PayrollIDs    []string `json:"payroll_ids" binding:"required,min=1,dive,uuid"`
	PaymentDate   string   `json:"payment_date" binding:"required"`
	PaymentMethod string   `json:"payment_method" binding:"required,oneof=BANK_TRANSFER CASH CHEQUE"`
	Notes         *string  `json:"notes"`
}

type PayrollResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	PayPeriod  string `json:"pay_period"`

	BasicSalary        string `json:"basic_salary"`
	TransportAllowance string `json:"transport_allowance"`
	MealAllowance      string `json:"meal_allowance"`
	HousingAllowance   string `json:"housing_allowance"`
	OtherAllowance     string `json:"other_allowance"`
	OvertimeHours      string `json:"overtime_hours"`
	OvertimeAmount     string `json:"overtime_amount"`
	GrossSalary        string `json:"gross_salary"`

	EpfEmployee     string `json:"epf_employee"`
	EpfEmployer     string `json:"epf_employer"`
	Etf             string `json:"etf"`
	PayeTax         string `json:"paye_tax"`
	LoanDeductions  string `json:"loan_deductions"`
	OtherDeductions string `json:"other_deductions"`
	TotalDeductions string `json:"total_deductions"`
	NetSalary       string `json:"net_salary"`

	DaysWorked int `json:"days_worked"`
	LeaveDays  int `json:"leave_days"`
	AbsentDays int `json:"absent_days"`

	PaymentStatus string  `json:"payment_status"`
	PaymentDate   *string `json:"payment_date,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	ReferenceNo   *string `json:"reference_no,omitempty"`
	PayslipURL    *string `json:"payslip_url,omitempty"`
}

type PaymentEventResponse struct {
	ID            string  `json:"id"`
	PayrollID     string  `json:"payroll_id"`
	Amount        string  `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
	ReferenceNo   string  `json:"reference_no"`
	Notes         *string `json:"notes,omitempty"`
}

const (
	BatchItemSuccess = "SUCCESS"
	BatchItemSkipped = "SKIPPED"
	BatchItemFailed  = "FAILED"
)

// BatchItemResult adalah satu baris laporan batch, urut sesuai roster.
type BatchItemResult struct {
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

type BatchRunResult struct {
	PayPeriod    string            `json:"pay_period"`
	SuccessCount int               `json:"success_count"`
	SkippedCount int               `json:"skipped_count"`
	FailedCount  int               `json:"failed_count"`
	Results      []BatchItemResult `json:"results"`
}

type SettleItemResult struct {
	PayrollID string `json:"payroll_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

type SettleBatchResult struct {
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	Results      []SettleItemResult `json:"results"`
}

type YearToDateResponse struct {
	EmployeeID  string `json:"employee_id"`
	Year        int    `json:"year"`
	Gross       string `json:"gross"`
	EpfEmployee string `json:"epf_employee"`
	EpfEmployer string `json:"epf_employer"`
	Etf         string `json:"etf"`
	Net         string `json:"net"`
	Periods     int    `json:"periods"`
}
