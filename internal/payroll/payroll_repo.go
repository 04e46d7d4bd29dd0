package payroll

import (
	"context"
	"time"

	"go-fuelops/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, record *PayrollRecord) error
	UpdateComputed(ctx context.Context, record *PayrollRecord) error
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, payPeriod string) (*PayrollRecord, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRecord, error)
	FindAllByPeriod(ctx context.Context, companyID, payPeriod, status string) ([]PayrollRecord, error)

	MarkPaid(ctx context.Context, companyID, id string, paymentDate time.Time, method, referenceNo string) (int64, error)
	Cancel(ctx context.Context, companyID, id string) (int64, error)
	SetPayslipURL(ctx context.Context, companyID, id, url string) error

	CreatePaymentEvent(ctx context.Context, event *PaymentEvent) error
	ListPaymentEvents(ctx context.Context, companyID, payrollID string) ([]PaymentEvent, error)

	YearToDateTotals(ctx context.Context, companyID, employeeID string, year int) (YearToDateTotals, error)
}

// computedColumns adalah kolom yang boleh ditimpa saat hitung ulang draft.
// Kolom payment_* sengaja tidak ada di sini.
var computedColumns = []string{
	"basic_salary", "transport_allowance", "meal_allowance", "housing_allowance",
	"other_allowance", "overtime_hours", "overtime_amount", "gross_salary",
	"epf_employee", "epf_employer", "etf", "paye_tax",
	"loan_deductions", "other_deductions", "total_deductions", "net_salary",
	"days_worked", "leave_days", "absent_days",
	"calculated_by", "updated_at",
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

func (r *repository) Create(ctx context.Context, record *PayrollRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) UpdateComputed(ctx context.Context, record *PayrollRecord) error {
	record.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(record.CompanyID.String())).
		Where("id = ?", record.ID).
		Select(computedColumns).
		Updates(record).Error
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, payPeriod string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("pay_period = ?", payPeriod).
		First(&record).Error
	return &record, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&record).Error
	return &record, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, companyID, payPeriod, status string) ([]PayrollRecord, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("pay_period = ?", payPeriod)
	if status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var records []PayrollRecord
	err := q.Order("created_at ASC").Find(&records).Error
	return records, err
}

// MarkPaid is the settlement guard. The WHERE on payment_status makes the
// transition atomic: of two concurrent settlements exactly one sees a row.
func (r *repository) MarkPaid(ctx context.Context, companyID, id string, paymentDate time.Time, method, referenceNo string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("payment_status = ?", PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": PaymentStatusPaid,
			"payment_date":   paymentDate,
			"payment_method": method,
			"reference_no":   referenceNo,
			"updated_at":     time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Cancel(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("payment_status = ?", PaymentStatusPending).
		Update("payment_status", PaymentStatusCancelled)
	return res.RowsAffected, res.Error
}

func (r *repository) SetPayslipURL(ctx context.Context, companyID, id, url string) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("payslip_url", url).Error
}

func (r *repository) CreatePaymentEvent(ctx context.Context, event *PaymentEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) ListPaymentEvents(ctx context.Context, companyID, payrollID string) ([]PaymentEvent, error) {
	var events []PaymentEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_id = ?", payrollID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) YearToDateTotals(ctx context.Context, companyID, employeeID string, year int) (YearToDateTotals, error) {
	var row struct {
		Gross       decimal.Decimal
		EpfEmployee decimal.Decimal
		EpfEmployer decimal.Decimal
		Etf         decimal.Decimal
		Net         decimal.Decimal
		Periods     int
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(gross_salary), 0)  AS gross,
			COALESCE(SUM(epf_employee), 0)  AS epf_employee,
			COALESCE(SUM(epf_employer), 0)  AS epf_employer,
			COALESCE(SUM(etf), 0)           AS etf,
			COALESCE(SUM(net_salary), 0)    AS net,
			COUNT(*)                        AS periods
		FROM payroll_records
		WHERE company_id = ?
		  AND employee_id = ?
		  AND pay_period LIKE ?
		  AND payment_status <> ?
	`, companyID, employeeID, yearPrefix(year), PaymentStatusCancelled).Scan(&row).Error
	if err != nil {
		return YearToDateTotals{}, err
	}

	return YearToDateTotals{
		Gross:       row.Gross,
		EpfEmployee: row.EpfEmployee,
		EpfEmployer: row.EpfEmployer,
		Etf:         row.Etf,
		Net:         row.Net,
		Periods:     row.Periods,
	}, nil
}

func yearPrefix(year int) string {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006") + "-%"
}
