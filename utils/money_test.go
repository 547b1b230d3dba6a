package utils

import "testing"

func TestFormatMinorUnits(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{123450, "1234.50"},
		{100, "1.00"},
	}

	for _, tc := range cases {
		if got := FormatMinorUnits(tc.amount); got != tc.want {
			t.Errorf("FormatMinorUnits(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestSignedMinorUnits(t *testing.T) {
	if got := SignedMinorUnits(1500, true); got != "-15.00" {
		t.Errorf("expense = %q, want -15.00", got)
	}
	if got := SignedMinorUnits(1500, false); got != "15.00" {
		t.Errorf("income = %q, want 15.00", got)
	}
}
