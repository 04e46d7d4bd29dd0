package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var scaleWords = []struct {
	value int64
	word  string
}{
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
	{100, "Hundred"},
}

// AmountInWords spells out a monetary amount for the payslip footer,
// e.g. 58261.36 -> "Fifty Eight Thousand Two Hundred Sixty One and Cents
// Thirty Six Only". Negative amounts are prefixed with "Minus".
func AmountInWords(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	amount = amount.Abs().RoundBank(2)

	whole := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()

	var parts []string
	if negative {
		parts = append(parts, "Minus")
	}
	if whole == 0 {
		parts = append(parts, "Zero")
	} else {
		parts = append(parts, spellInteger(whole))
	}
	if cents > 0 {
		parts = append(parts, "and Cents", spellInteger(cents))
	}
	parts = append(parts, "Only")

	return strings.Join(parts, " ")
}

func spellInteger(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n < 100 {
		word := tensWords[n/10]
		if rem := n % 10; rem > 0 {
			word += " " + onesWords[rem]
		}
		return word
	}
	for _, scale := range scaleWords {
		if n >= scale.value {
			word := spellInteger(n/scale.value) + " " + scale.word
			if rem := n % scale.value; rem > 0 {
				word += " " + spellInteger(rem)
			}
			return word
		}
	}
	return ""
}
