package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error

	CreateOvertime(ctx context.Context, entry *OvertimeEntry) error
	ApproveOvertime(ctx context.Context, companyID, id, approverID string) (int64, error)

	// Agregat yang dikonsumsi mesin gaji
	GetPeriodCounts(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) (PeriodCounts, error)
	GetApprovedOvertimeHours(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) (OvertimeHours, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) CreateOvertime(ctx context.Context, entry *OvertimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ApproveOvertime(ctx context.Context, companyID, id, approverID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&OvertimeEntry{}).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Where("approved = false").
		Updates(map[string]any{
			"approved":    true,
			"approved_by": approverID,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) GetPeriodCounts(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) (PeriodCounts, error) {
	var row struct {
		DaysWorked int
		HalfDays   int
		LeaveDays  int
		AbsentDays int
	}

	err := r.db.WithContext(ctx).Raw(`
SELECT
	COUNT(*) FILTER (WHERE status IN (?, ?)) AS days_worked,
	COUNT(*) FILTER (WHERE status = ?)       AS half_days,
	COUNT(*) FILTER (WHERE status = ?)       AS leave_days,
	COUNT(*) FILTER (WHERE status = ?)       AS absent_days
FROM attendances
WHERE company_id = ?
	AND employee_id = ?
	AND attendance_date BETWEEN ? AND ?
`,
		StatusPresent, StatusLate,
		StatusHalfDay,
		StatusLeave,
		StatusAbsent,
		companyID, employeeID,
		periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"),
	).Scan(&row).Error
	if err != nil {
		return PeriodCounts{}, err
	}

	// HALF_DAY juga dihitung sebagai hari masuk; pengurangan setengah hari
	// terjadi di kalkulator, bukan di sini.
	return PeriodCounts{
		DaysWorked: row.DaysWorked + row.HalfDays,
		HalfDays:   row.HalfDays,
		LeaveDays:  row.LeaveDays,
		AbsentDays: row.AbsentDays,
	}, nil
}

func (r *repository) GetApprovedOvertimeHours(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) (OvertimeHours, error) {
	var row struct {
		RegularHours decimal.Decimal
		HolidayHours decimal.Decimal
	}

	err := r.db.WithContext(ctx).Raw(`
SELECT
	COALESCE(SUM(hours) FILTER (WHERE kind = ?), 0) AS regular_hours,
	COALESCE(SUM(hours) FILTER (WHERE kind = ?), 0) AS holiday_hours
FROM overtime_entries
WHERE company_id = ?
	AND employee_id = ?
	AND approved = true
	AND overtime_date BETWEEN ? AND ?
`,
		OvertimeKindRegular, OvertimeKindHoliday,
		companyID, employeeID,
		periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"),
	).Scan(&row).Error
	if err != nil {
		return OvertimeHours{}, err
	}

	return OvertimeHours{Regular: row.RegularHours, Holiday: row.HolidayHours}, nil
}
