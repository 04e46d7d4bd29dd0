package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "PRESENT"
	StatusHalfDay = "HALF_DAY"
	StatusLeave   = "LEAVE"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
)

const (
	OvertimeKindRegular = "REGULAR"
	OvertimeKindHoliday = "HOLIDAY"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;index"`
	ClockIn        *time.Time `gorm:"column:clock_in;type:timestamptz"`
	ClockOut       *time.Time `gorm:"column:clock_out;type:timestamptz"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Notes          *string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// OvertimeEntry dicatat per tanggal; klasifikasi REGULAR vs HOLIDAY datang dari
// supervisor yang meng-approve, bukan dari engine gaji.
type OvertimeEntry struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID   uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;index"`
	OvertimeDate time.Time       `gorm:"column:overtime_date;type:date;not null;index"`
	Hours        decimal.Decimal `gorm:"column:hours;type:numeric(5,2);not null"`
	Kind         string          `gorm:"column:kind;type:varchar(20);not null;default:REGULAR"`
	Approved     bool            `gorm:"column:approved;not null;default:false"`
	ApprovedBy   *uuid.UUID      `gorm:"column:approved_by;type:uuid"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (OvertimeEntry) TableName() string {
	return "overtime_entries"
}

// PeriodCounts adalah agregat kehadiran satu periode gaji.
type PeriodCounts struct {
	DaysWorked int
	HalfDays   int
	LeaveDays  int
	AbsentDays int
}

// IsEmpty true kalau tidak ada satupun baris kehadiran pada periode itu.
func (c PeriodCounts) IsEmpty() bool {
	return c.DaysWorked == 0 && c.HalfDays == 0 && c.LeaveDays == 0 && c.AbsentDays == 0
}

// OvertimeHours adalah total jam lembur approved satu periode, dipisah per tarif.
type OvertimeHours struct {
	Regular decimal.Decimal
	Holiday decimal.Decimal
}
