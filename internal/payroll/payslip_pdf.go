package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

// payslipLines lays out the printable payslip, one string per PDF text row.
func payslipLines(record PayrollRecord, employeeName, employeeNumber string) []string {
	lines := []string{
		"PAYSLIP",
		fmt.Sprintf("Employee: %s (%s)", employeeName, employeeNumber),
		fmt.Sprintf("Pay Period: %s", record.PayPeriod),
		fmt.Sprintf("Days Worked: %d  Leave: %d  Absent: %d", record.DaysWorked, record.LeaveDays, record.AbsentDays),
		"",
		"EARNINGS",
		fmt.Sprintf("  Basic Salary        %s", record.BasicSalary.StringFixed(2)),
		fmt.Sprintf("  Transport Allowance %s", record.TransportAllowance.StringFixed(2)),
		fmt.Sprintf("  Meal Allowance      %s", record.MealAllowance.StringFixed(2)),
		fmt.Sprintf("  Housing Allowance   %s", record.HousingAllowance.StringFixed(2)),
		fmt.Sprintf("  Other Allowance     %s", record.OtherAllowance.StringFixed(2)),
		fmt.Sprintf("  Overtime (%s hrs)   %s", record.OvertimeHours.StringFixed(2), record.OvertimeAmount.StringFixed(2)),
		fmt.Sprintf("  Gross Salary        %s", record.GrossSalary.StringFixed(2)),
		"",
		"DEDUCTIONS",
		fmt.Sprintf("  EPF (Employee)      %s", record.EpfEmployee.StringFixed(2)),
		fmt.Sprintf("  Tax                 %s", record.PayeTax.StringFixed(2)),
		fmt.Sprintf("  Loan Deductions     %s", record.LoanDeductions.StringFixed(2)),
		fmt.Sprintf("  Other Deductions    %s", record.OtherDeductions.StringFixed(2)),
		fmt.Sprintf("  Total Deductions    %s", record.TotalDeductions.StringFixed(2)),
		"",
		"EMPLOYER CONTRIBUTIONS (not deducted)",
		fmt.Sprintf("  EPF (Employer)      %s", record.EpfEmployer.StringFixed(2)),
		fmt.Sprintf("  ETF                 %s", record.Etf.StringFixed(2)),
		"",
		fmt.Sprintf("NET SALARY            %s", record.NetSalary.StringFixed(2)),
		AmountInWords(record.NetSalary),
	}

	if record.PaymentStatus == PaymentStatusPaid && record.ReferenceNo != nil {
		lines = append(lines, "", fmt.Sprintf("Paid  Ref: %s", *record.ReferenceNo))
	}

	return lines
}

// buildPayslipPDF emits a single-page PDF by hand: one Helvetica text block,
// no compression, xref assembled from byte offsets.
func buildPayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
