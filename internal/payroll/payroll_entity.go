package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusCancelled = "CANCELLED"
)

// PayrollRecord adalah hasil hitung gaji satu karyawan untuk satu periode.
// Unik per (company, employee, pay_period); hitung ulang sebelum dibayar
// menimpa draft, setelah PAID angka dikunci.
type PayrollRecord struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_payroll_period,priority:1"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:idx_payroll_period,priority:2"`
	PayPeriod  string    `gorm:"column:pay_period;type:varchar(7);not null;uniqueIndex:idx_payroll_period,priority:3"`

	// Earnings
	BasicSalary        decimal.Decimal `gorm:"column:basic_salary;type:numeric(14,2);not null"`
	TransportAllowance decimal.Decimal `gorm:"column:transport_allowance;type:numeric(14,2);not null;default:0"`
	MealAllowance      decimal.Decimal `gorm:"column:meal_allowance;type:numeric(14,2);not null;default:0"`
	HousingAllowance   decimal.Decimal `gorm:"column:housing_allowance;type:numeric(14,2);not null;default:0"`
	OtherAllowance     decimal.Decimal `gorm:"column:other_allowance;type:numeric(14,2);not null;default:0"`
	OvertimeHours      decimal.Decimal `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`
	OvertimeAmount     decimal.Decimal `gorm:"column:overtime_amount;type:numeric(14,2);not null;default:0"`
	GrossSalary        decimal.Decimal `gorm:"column:gross_salary;type:numeric(14,2);not null"`

	// Deductions. EpfEmployer dan Etf informasional, tidak mengurangi net.
	EpfEmployee     decimal.Decimal `gorm:"column:epf_employee;type:numeric(14,2);not null;default:0"`
	EpfEmployer     decimal.Decimal `gorm:"column:epf_employer;type:numeric(14,2);not null;default:0"`
	Etf             decimal.Decimal `gorm:"column:etf;type:numeric(14,2);not null;default:0"`
	PayeTax         decimal.Decimal `gorm:"column:paye_tax;type:numeric(14,2);not null;default:0"`
	LoanDeductions  decimal.Decimal `gorm:"column:loan_deductions;type:numeric(14,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"column:other_deductions;type:numeric(14,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"column:total_deductions;type:numeric(14,2);not null;default:0"`

	NetSalary decimal.Decimal `gorm:"column:net_salary;type:numeric(14,2);not null"`

	// Attendance counters yang dipakai saat hitung
	DaysWorked int `gorm:"column:days_worked;not null;default:0"`
	LeaveDays  int `gorm:"column:leave_days;not null;default:0"`
	AbsentDays int `gorm:"column:absent_days;not null;default:0"`

	PaymentStatus string     `gorm:"column:payment_status;type:varchar(20);not null;default:PENDING"`
	PaymentDate   *time.Time `gorm:"column:payment_date;type:date"`
	PaymentMethod *string    `gorm:"column:payment_method;type:varchar(50)"`
	ReferenceNo   *string    `gorm:"column:reference_no;type:varchar(50)"`
	PayslipURL    *string    `gorm:"column:payslip_url;type:text"`

	CalculatedBy uuid.UUID `gorm:"column:calculated_by;type:uuid;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// PaymentEvent is append-only; one row per successful settlement. The audit
// trail stays intact even if someone later touches the record's payment
// columns by hand.
type PaymentEvent struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	PayrollID     uuid.UUID       `gorm:"column:payroll_id;type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	PaymentDate   time.Time       `gorm:"column:payment_date;type:date;not null"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(50);not null"`
	ReferenceNo   string          `gorm:"column:reference_no;type:varchar(50);not null"`
	Notes         *string         `gorm:"column:notes;type:text"`
	PaidBy        uuid.UUID       `gorm:"column:paid_by;type:uuid;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (PaymentEvent) TableName() string {
	return "payment_events"
}

// YearToDateTotals adalah agregat untuk laporan tahunan dan slip gaji.
type YearToDateTotals struct {
	Gross       decimal.Decimal
	EpfEmployee decimal.Decimal
	EpfEmployer decimal.Decimal
	Etf         decimal.Decimal
	Net         decimal.Decimal
	Periods     int
}
