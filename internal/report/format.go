package report

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"receipts/internal/core"
)

const (
	DefaultCurrency   = "₹"
	DefaultLocale     = "en-IN"
	DefaultDateLayout = "02 Jan"
)

// Formatter turns amounts, counts and dates into display strings.
type Formatter struct {
	currency   string
	dateLayout string
	printer    *message.Printer // nil means no digit grouping
	decimalSep string
}

// NewFormatter builds a formatter for the given BCP 47 locale. An empty
// locale disables thousands grouping.
func NewFormatter(locale, currency, dateLayout string) (*Formatter, error) {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	f := &Formatter{currency: currency, dateLayout: dateLayout}
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		f.printer = message.NewPrinter(tag)
		f.decimalSep = strings.Trim(f.printer.Sprint(number.Decimal(1.5)), "15")
	}
	return f, nil
}

// DefaultFormatter renders rupees with Indian digit grouping.
func DefaultFormatter() *Formatter {
	f, _ := NewFormatter(DefaultLocale, DefaultCurrency, DefaultDateLayout)
	return f
}

// Number renders an amount with locale grouping and no decimal padding.
// Only the whole part goes through the locale printer, as an int64, so
// amounts beyond float64 precision keep every digit.
func (f *Formatter) Number(m core.Money) string {
	if f.printer == nil {
		return m.String()
	}
	whole, cents := m.Split()
	s := f.printer.Sprint(number.Decimal(whole))
	if cents != 0 {
		s += f.decimalSep + strings.TrimRight(fmt.Sprintf("%02d", cents), "0")
	}
	if m.Cents < 0 {
		s = "-" + s
	}
	return s
}

// Money is Number prefixed with the currency symbol.
func (f *Formatter) Money(m core.Money) string {
	return f.currency + f.Number(m)
}

func (f *Formatter) Date(d core.Date) string {
	return d.Format(f.dateLayout)
}

// Pluralize renders "<count> <noun>", appending "s" when count != 1.
func Pluralize(count int, noun string) string {
	s := strconv.Itoa(count) + " " + noun
	if count != 1 {
		s += "s"
	}
	return s
}
