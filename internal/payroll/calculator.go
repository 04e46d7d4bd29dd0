package payroll

import (
	"go-fuelops/internal/attendance"
	"go-fuelops/internal/compensation"
	"go-fuelops/internal/loan"

	"github.com/shopspring/decimal"
)

// Jam kerja standar SPBU: 8 jam sehari, 22 hari sebulan.
const (
	standardHoursPerDay  = 8
	standardDaysPerMonth = 22
)

// CalculationInput bundles everything Compute needs. Compute never touches
// storage; the caller gathers profile, attendance and loans first.
type CalculationInput struct {
	Profile    compensation.CompensationProfile
	Attendance attendance.PeriodCounts
	Overtime   attendance.OvertimeHours

	// PresetOvertimeAmount, kalau diisi, dipakai apa adanya dan jam lembur
	// tidak dikalikan tarif lagi.
	PresetOvertimeAmount *decimal.Decimal

	ActiveLoans     []loan.LoanAccount
	OtherDeductions decimal.Decimal
}

// Breakdown is the fully itemized result. All amounts are rounded to two
// decimal places with banker's rounding, so recomputing identical inputs
// yields identical numbers.
type Breakdown struct {
	BasicSalary        decimal.Decimal
	TransportAllowance decimal.Decimal
	MealAllowance      decimal.Decimal
	HousingAllowance   decimal.Decimal
	OtherAllowance     decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimeAmount     decimal.Decimal
	GrossSalary        decimal.Decimal

	EpfEmployee     decimal.Decimal
	EpfEmployer     decimal.Decimal
	Etf             decimal.Decimal
	PayeTax         decimal.Decimal
	LoanDeductions  decimal.Decimal
	OtherDeductions decimal.Decimal
	TotalDeductions decimal.Decimal

	NetSalary decimal.Decimal

	DaysWorked int
	LeaveDays  int
	AbsentDays int
}

var oneHundred = decimal.NewFromInt(100)

// Compute turns a compensation profile plus period facts into a salary
// breakdown. Pure function: no I/O, no clock, no randomness.
//
// Net bisa negatif (potongan kasbon besar melebihi gaji); itu sinyal buat
// intervensi manual, bukan error, jadi tidak di-clamp ke nol.
func Compute(in CalculationInput) Breakdown {
	p := in.Profile

	counts := in.Attendance
	daysWorked := counts.DaysWorked - counts.HalfDays
	leaveDays := counts.LeaveDays
	absentDays := counts.AbsentDays
	if counts.IsEmpty() {
		// Tanpa data absensi sama sekali: anggap hadir penuh satu bulan,
		// jangan diam-diam nol.
		daysWorked = standardDaysPerMonth
	}
	if daysWorked < 0 {
		daysWorked = 0
	}

	totalOvertimeHours := in.Overtime.Regular.Add(in.Overtime.Holiday)

	var overtimeAmount decimal.Decimal
	switch {
	case in.PresetOvertimeAmount != nil:
		overtimeAmount = in.PresetOvertimeAmount.RoundBank(2)
	case totalOvertimeHours.IsPositive():
		hourlyRate := p.BasicSalary.Div(decimal.NewFromInt(standardHoursPerDay * standardDaysPerMonth))
		overtimeAmount = hourlyRate.Mul(in.Overtime.Regular).Mul(p.OvertimeMultiplier).
			Add(hourlyRate.Mul(in.Overtime.Holiday).Mul(p.HolidayOvertimeMultiplier)).
			RoundBank(2)
	default:
		overtimeAmount = decimal.Zero
	}

	gross := p.BasicSalary.
		Add(p.TransportAllowance).
		Add(p.MealAllowance).
		Add(p.HousingAllowance).
		Add(p.OtherAllowance).
		Add(overtimeAmount).
		RoundBank(2)

	epfEmployee := p.BasicSalary.Mul(p.EpfEmployeePercent).Div(oneHundred).RoundBank(2)
	epfEmployer := p.BasicSalary.Mul(p.EpfEmployerPercent).Div(oneHundred).RoundBank(2)
	etf := p.BasicSalary.Mul(p.EtfPercent).Div(oneHundred).RoundBank(2)

	tax := decimal.Zero
	if p.TaxPercent.IsPositive() {
		tax = gross.Mul(p.TaxPercent).Div(oneHundred).RoundBank(2)
	}

	// Angka ini advisory: saat settlement aturan yang sama dievaluasi ulang
	// terhadap saldo terkini, dan hasilnya harus identik selama saldo belum
	// berubah.
	loanDeductions := decimal.Zero
	for _, account := range in.ActiveLoans {
		if account.Status != loan.StatusActive {
			continue
		}
		loanDeductions = loanDeductions.Add(loan.DeductionFor(account))
	}
	loanDeductions = loanDeductions.RoundBank(2)

	otherDeductions := in.OtherDeductions.RoundBank(2)

	totalDeductions := epfEmployee.Add(tax).Add(loanDeductions).Add(otherDeductions)
	net := gross.Sub(totalDeductions)

	return Breakdown{
		BasicSalary:        p.BasicSalary.RoundBank(2),
		TransportAllowance: p.TransportAllowance.RoundBank(2),
		MealAllowance:      p.MealAllowance.RoundBank(2),
		HousingAllowance:   p.HousingAllowance.RoundBank(2),
		OtherAllowance:     p.OtherAllowance.RoundBank(2),
		OvertimeHours:      totalOvertimeHours.RoundBank(2),
		OvertimeAmount:     overtimeAmount,
		GrossSalary:        gross,

		EpfEmployee:     epfEmployee,
		EpfEmployer:     epfEmployer,
		Etf:             etf,
		PayeTax:         tax,
		LoanDeductions:  loanDeductions,
		OtherDeductions: otherDeductions,
		TotalDeductions: totalDeductions,

		NetSalary: net,

		DaysWorked: daysWorked,
		LeaveDays:  leaveDays,
		AbsentDays: absentDays,
	}
}
