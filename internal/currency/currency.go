// Package currency renders decimal amounts for terminal output.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter formats amounts in one currency with a fixed number of fraction digits.
type Formatter struct {
	code     string
	fraction int
	f        *money.Formatter
}

// New returns a Formatter for an ISO 4217 code. Codes go-money does not know
// are rendered as plain numbers followed by the code.
func New(code string, fraction int) Formatter {
	if fraction < 0 {
		fraction = 0
	}
	// money.New never returns a nil currency, unlike money.GetCurrency.
	cur := money.New(0, code).Currency()
	out := Formatter{code: cur.Code, fraction: fraction}
	if cur.Template != "" {
		out.f = cur.Formatter()
		out.f.Fraction = fraction
	}
	return out
}

// Code returns the upper-cased currency code.
func (c Formatter) Code() string {
	return c.code
}

// Format renders d rounded to the formatter's fraction digits.
func (c Formatter) Format(d decimal.Decimal) string {
	if c.f == nil {
		return d.StringFixed(int32(c.fraction)) + " " + c.code
	}
	return c.f.Format(d.Shift(int32(c.fraction)).Round(0).IntPart())
}
