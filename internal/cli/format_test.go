package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"2100", "$2,100.00"},
		{"0.005", "$0.01"},
		{"-42.1", "-$42.10"},
	}
	for _, tt := range tests {
		if got := FormatMoney(d(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(d("30")); got != "+$30.00" {
		t.Errorf("positive = %q", got)
	}
	if got := FormatSignedMoney(d("-15.2")); got != "-$15.20" {
		t.Errorf("negative = %q", got)
	}
	if got := FormatSignedMoney(d("0")); got != "+$0.00" {
		t.Errorf("zero = %q", got)
	}
}

func TestSetCurrency(t *testing.T) {
	defer SetCurrency("USD")

	if SetCurrency("NOPE") {
		t.Fatal("SetCurrency accepted an unknown code")
	}
	if Currency() != "USD" {
		t.Fatalf("Currency() = %q after rejected code", Currency())
	}
	if !SetCurrency("eur") {
		t.Fatal("SetCurrency rejected eur")
	}
	if got := FormatMoney(d("10")); got == "$10.00" {
		t.Errorf("FormatMoney still uses dollars after switching to EUR: %q", got)
	}
}

func TestFormatFactor(t *testing.T) {
	tests := map[string]string{
		"0.015":  "+1.5%",
		"-0.008": "-0.8%",
		"0.022":  "+2.2%",
		"0":      "+0.0%",
	}
	for in, want := range tests {
		if got := FormatFactor(d(in)); got != want {
			t.Errorf("FormatFactor(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercentAndMonth(t *testing.T) {
	if got := FormatPercent(66.129); got != "66.1%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatMonth("2024-03"); got != "Mar 2024" {
		t.Errorf("FormatMonth = %q", got)
	}
	if got := FormatMonth("Q1"); got != "Q1" {
		t.Errorf("FormatMonth(bad) = %q", got)
	}
}

func TestFormatSkippedDates(t *testing.T) {
	tests := map[int]string{
		1:    "1 row skipped (unparseable date)",
		3:    "3 rows skipped (unparseable date)",
		1200: "1,200 rows skipped (unparseable date)",
	}
	for in, want := range tests {
		if got := FormatSkippedDates(in); got != want {
			t.Errorf("FormatSkippedDates(%d) = %q, want %q", in, got, want)
		}
	}
}
