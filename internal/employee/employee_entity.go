package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeNumber   string    `gorm:"column:employee_number;type:varchar(20);not null;uniqueIndex:idx_employees_company_number,priority:2"`
	FullName         string    `gorm:"column:full_name;type:varchar(255);not null"`
	Department       string    `gorm:"column:department;type:varchar(100);not null"`
	Position         string    `gorm:"column:position;type:varchar(100)"`
	EmploymentStatus string    `gorm:"column:employment_status;type:varchar(20);not null;default:ACTIVE"`
	JoinDate         time.Time `gorm:"column:join_date;type:date;not null"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
