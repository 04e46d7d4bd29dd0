package compensation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// CompensationProfile adalah konfigurasi gaji per karyawan. Tidak pernah diedit
// in-place: revisi = insert baris ACTIVE baru + baris lama jadi INACTIVE,
// supaya histori tetap utuh untuk YTD dan audit.
type CompensationProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_comp_employee_status"`

	// Semua nominal disimpan sebagai numeric, bukan float
	BasicSalary        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TransportAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	MealAllowance      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HousingAllowance   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OtherAllowance     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	EpfEmployeePercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	EpfEmployerPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	EtfPercent         decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	TaxPercent         decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	OvertimeMultiplier        decimal.Decimal `gorm:"type:numeric(5,2);not null;default:1.5"`
	HolidayOvertimeMultiplier decimal.Decimal `gorm:"type:numeric(5,2);not null;default:2"`

	EffectiveDate time.Time `gorm:"type:date;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_comp_employee_status"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompensationProfile) TableName() string {
	return "compensation_profiles"
}
