package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Currency
// ---------------------------------------------------------------------------

func TestNewCurrency_Valid(t *testing.T) {
	tests := []string{"MYR", "SGD", "USD"}
	for _, code := range tests {
		c, err := NewCurrency(code)
		if err != nil {
			t.Errorf("NewCurrency(%q) unexpected error: %v", code, err)
		}
		if c.Code() != code {
			t.Errorf("NewCurrency(%q).Code() = %q, want %q", code, c.Code(), code)
		}
	}
}

func TestNewCurrency_Invalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"lowercase", "myr"},
		{"too short", "RM"},
		{"digits", "MY1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCurrency(tt.code); err == nil {
				t.Errorf("NewCurrency(%q) expected error, got nil", tt.code)
			}
		})
	}
}

func TestMustCurrency_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCurrency(\"bad\") did not panic")
		}
	}()
	MustCurrency("bad")
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func TestAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1942.9136454870463, "1942.91"},
		{0.005, "0.01"},
		{-164.534, "-164.53"},
		{math.NaN(), "0"},
		{math.Inf(1), "0"},
	}
	for _, tt := range tests {
		if got := Amount(tt.in); !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Amount(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFloat(t *testing.T) {
	if got := Float(decimal.RequireFromString("430000.50")); got != 430000.5 {
		t.Errorf("Float = %v, want 430000.5", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "RM 0.00"},
		{"999.5", "RM 999.50"},
		{"1942.91", "RM 1,942.91"},
		{"430000", "RM 430,000.00"},
		{"1234567.891", "RM 1,234,567.89"},
		{"-164.53", "-RM 164.53"},
	}
	for _, tt := range tests {
		if got := Format(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("Format(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
