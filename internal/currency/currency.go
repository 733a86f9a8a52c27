// Package currency converts and formats amounts for display. Amounts are
// persisted in a single canonical currency (INR); switching the display
// currency is a pure presentation transform and never mutates stored values.
package currency

import (
	"fmt"
	"strings"
)

// Code is an ISO 4217 currency code supported for display.
type Code string

const (
	// INR is the canonical currency amounts are stored in.
	INR Code = "INR"
	// USD is the alternate display currency.
	USD Code = "USD"
)

// usdToINR is the fixed exchange rate: 1 USD = 83 INR. Deliberately baked
// in rather than fetched live.
const usdToINR = 83.0

// Valid reports whether the code is a supported display currency.
func Valid(code Code) bool {
	return code == INR || code == USD
}

// Symbol returns the display glyph for a currency code.
func Symbol(code Code) string {
	if code == USD {
		return "$"
	}
	return "₹"
}

// RateProvider supplies exchange rates between display currencies. The
// fixed-rate implementation below is the only one today; a live-rate source
// can be substituted without touching the formatter's contract.
type RateProvider interface {
	Rate(from, to Code) (float64, error)
}

// FixedRateProvider returns the baked-in USD/INR rate.
type FixedRateProvider struct{}

// Rate returns the multiplier that converts an amount in from-currency to
// to-currency.
func (FixedRateProvider) Rate(from, to Code) (float64, error) {
	from = Code(strings.ToUpper(string(from)))
	to = Code(strings.ToUpper(string(to)))
	if !Valid(from) || !Valid(to) {
		return 0, fmt.Errorf("unsupported currency pair %s/%s", from, to)
	}
	switch {
	case from == to:
		return 1, nil
	case from == USD && to == INR:
		return usdToINR, nil
	default: // INR -> USD
		return 1 / usdToINR, nil
	}
}

// Formatter renders canonical amounts in a chosen display currency.
type Formatter struct {
	rates RateProvider
}

// NewFormatter creates a Formatter backed by the given rate provider.
func NewFormatter(rates RateProvider) *Formatter {
	return &Formatter{rates: rates}
}

// Convert converts a canonical (INR) amount to the target currency.
func (f *Formatter) Convert(amountINR float64, target Code) (float64, error) {
	rate, err := f.rates.Rate(INR, target)
	if err != nil {
		return 0, err
	}
	return amountINR * rate, nil
}

// Format renders a canonical (INR) amount as a two-decimal string with the
// target currency's symbol, e.g. "₹1234.50" or "$14.88".
func (f *Formatter) Format(amountINR float64, target Code) (string, error) {
	converted, err := f.Convert(amountINR, target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%.2f", Symbol(target), converted), nil
}
