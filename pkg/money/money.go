// Package money converts between the float64 figures used by the decision
// engine and the decimal amounts exchanged with clients and storage.
package money

import (
	"fmt"
	"math"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string { return c.code }

// String returns the currency code.
func (c Currency) String() string { return c.code }

// MYR is the currency every amount in the service is denominated in.
var MYR = MustCurrency("MYR")

// Amount rounds an engine figure to the sen. NaN and infinities become zero.
func Amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

// Ratio rounds a percentage or rate for display to two decimal places.
func Ratio(v float64) decimal.Decimal {
	return Amount(v)
}

// Float converts a wire amount back into an engine figure.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Format renders an amount as "RM 1,234.56".
func Format(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	out := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "RM " + string(out) + frac
}
