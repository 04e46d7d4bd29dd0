package events

import "time"

const PayrollSettledTopic = "fuelops.payroll.settled.v1"

type PayrollSettledEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	CompanyID   string    `json:"company_id"`
	EmployeeID  string    `json:"employee_id"`
	PayPeriod   string    `json:"pay_period"`
	NetAmount   string    `json:"net_amount"`
	ReferenceNo string    `json:"reference_no"`
	SettledBy   string    `json:"settled_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
