package pricing

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// wholeNumbers is where float64 loses its fractional part: every value at
// or above it is already a whole number of cents.
const wholeNumbers = 1 << 52

var usd = message.NewPrinter(language.AmericanEnglish)

// RoundCurrency rounds a monetary value to cents, half-up at the cent boundary.
// Existing price sheets were computed with round(x*100)/100, so the float
// arithmetic here must stay exactly that. The result is always finite.
func RoundCurrency(value float64) float64 {
	if !isFinite(value) || math.Abs(value) >= wholeNumbers {
		return saturate(value)
	}
	return math.Floor(value*100+0.5) / 100
}

// saturate keeps a result finite: overflow pins to the largest float64 of
// the same sign and NaN becomes 0.
func saturate(value float64) float64 {
	switch {
	case math.IsNaN(value):
		return 0
	case math.IsInf(value, 1):
		return math.MaxFloat64
	case math.IsInf(value, -1):
		return -math.MaxFloat64
	}
	return value
}

// FormatCurrency renders a value as US dollars, e.g. "$1,234.50".
func FormatCurrency(value float64) string {
	d := decimal.NewFromFloat(saturate(value)).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + usd.Sprintf("$%.2f", d.InexactFloat64())
}

// sum adds values exactly and returns the result as a float.
func sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(saturate(v)))
	}
	return saturate(total.InexactFloat64())
}
