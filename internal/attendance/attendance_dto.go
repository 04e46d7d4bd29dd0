package attendance

import "github.com/shopspring/decimal"

type ClockInRequest struct {
	Notes *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

type MarkDayRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=PRESENT HALF_DAY LEAVE ABSENT"`
	Notes      *string `json:"notes"`
}

type RecordOvertimeRequest struct {
	EmployeeID string          `json:"employee_id" binding:"required,uuid"`
	Date       string          `json:"date" binding:"required"`
	Hours      decimal.Decimal `json:"hours" binding:"required"`
	Kind       string          `json:"kind" binding:"omitempty,oneof=REGULAR HOLIDAY"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	ClockIn        *string `json:"clock_in,omitempty"`
	ClockOut       *string `json:"clock_out,omitempty"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
}

type OvertimeResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	OvertimeDate string `json:"overtime_date"`
	Hours        string `json:"hours"`
	Kind         string `json:"kind"`
	Approved     bool   `json:"approved"`
}
