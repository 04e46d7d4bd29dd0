package compensation

import "github.com/shopspring/decimal"

type CreateCompensationProfileRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	EffectiveDate string `json:"effective_date" binding:"required"`

	BasicSalary        decimal.Decimal `json:"basic_salary" binding:"required"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	OtherAllowance     decimal.Decimal `json:"other_allowance"`

	EpfEmployeePercent decimal.Decimal `json:"epf_employee_percent"`
	EpfEmployerPercent decimal.Decimal `json:"epf_employer_percent"`
	EtfPercent         decimal.Decimal `json:"etf_percent"`
	TaxPercent         decimal.Decimal `json:"tax_percent"`

	OvertimeMultiplier        decimal.Decimal `json:"overtime_multiplier"`
	HolidayOvertimeMultiplier decimal.Decimal `json:"holiday_overtime_multiplier"`
}

type CompensationProfileResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	BasicSalary        string `json:"basic_salary"`
	TransportAllowance string `json:"transport_allowance"`
	MealAllowance      string `json:"meal_allowance"`
	HousingAllowance   string `json:"housing_allowance"`
	OtherAllowance     string `json:"other_allowance"`

	EpfEmployeePercent string `json:"epf_employee_percent"`
	EpfEmployerPercent string `json:"epf_employer_percent"`
	EtfPercent         string `json:"etf_percent"`
	TaxPercent         string `json:"tax_percent"`

	OvertimeMultiplier        string `json:"overtime_multiplier"`
	HolidayOvertimeMultiplier string `json:"holiday_overtime_multiplier"`

	EffectiveDate string `json:"effective_date"`
	Status        string `json:"status"`
}
