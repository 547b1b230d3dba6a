package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMinorUnits renders an amount held in minor currency units as an
// exact two-decimal major-unit string, e.g. 123450 -> "1234.50".
func FormatMinorUnits(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// SignedMinorUnits applies the display sign for a transaction amount:
// expenses render negative, incomes positive.
func SignedMinorUnits(amount int64, expense bool) string {
	d := decimal.New(amount, -2)
	if expense {
		d = d.Neg()
	}
	return d.StringFixed(2)
}
