// Package money converts between decimal price strings, integer cents, and
// localized currency text.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidPrice is returned for prices that are not a non-negative decimal
// with at most two fraction digits.
var ErrInvalidPrice = errors.New("invalid price")

// Parse converts a decimal string such as "12.50" into cents.
func Parse(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidPrice
	}
	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" || !digits(whole) {
		return 0, ErrInvalidPrice
	}
	if hasFrac && (frac == "" || len(frac) > 2 || !digits(frac)) {
		return 0, ErrInvalidPrice
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	return cents, nil
}

// Decimal renders cents as a plain "12.50" string, the inverse of Parse.
func Decimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func digits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Formatter renders cent amounts in a fixed currency and locale.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a formatter for an ISO 4217 code. An empty code means
// USD; an empty locale means English.
func NewFormatter(code, locale string) (Formatter, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("parse currency %q: %w", code, err)
	}
	tag := language.English
	if strings.TrimSpace(locale) != "" {
		tag, err = language.Parse(locale)
		if err != nil {
			return Formatter{}, fmt.Errorf("parse locale %q: %w", locale, err)
		}
	}
	return Formatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Format renders cents with the currency symbol, e.g. "$ 12.50".
func (f Formatter) Format(cents int64) string {
	if f.printer == nil {
		return Decimal(cents)
	}
	amount := f.unit.Amount(float64(cents) / 100)
	return f.printer.Sprint(currency.Symbol(amount))
}

// Code returns the ISO currency code.
func (f Formatter) Code() string {
	return f.unit.String()
}
