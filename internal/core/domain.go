package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ISODateLayout is the wire and grouping format for entry dates.
const ISODateLayout = "2006-01-02"

const (
	// MaxQuantity caps how many identical entries one add action may create.
	MaxQuantity = 100
	// MaxTypeLength caps the free-form type label.
	MaxTypeLength = 100
	// MaxAmount caps a single entry amount, in major units.
	MaxAmount = 1_000_000_000_000
	// MaxTotalCents caps the sum of any set of stored entries so that every
	// subtotal and total fits in an int64.
	MaxTotalCents = 100_000_000_000_000_000
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Entry is one receipt line item. Entries are immutable once stored.
	Entry struct {
		ID     string
		Type   string
		Date   Date
		Amount Money
	}

	// AddRequest is the raw add action as submitted by the form.
	AddRequest struct {
		Type     string
		Date     string
		Amount   string
		Quantity int
	}
)

var (
	// ErrValidation is wrapped by every add-boundary validation failure.
	ErrValidation = errors.New("validation failed")

	ErrMissingDate     = fmt.Errorf("%w: missing date", ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidAmount   = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: invalid quantity", ErrValidation)
	ErrEmptyType       = fmt.Errorf("%w: empty type", ErrValidation)
	ErrTypeTooLong     = fmt.Errorf("%w: type too long (max %d characters)", ErrValidation, MaxTypeLength)
	ErrMissingID       = fmt.Errorf("%w: missing id", ErrValidation)
	ErrInvalidType     = fmt.Errorf("%w: type contains control characters", ErrValidation)
	ErrTotalTooLarge   = fmt.Errorf("%w: total too large", ErrValidation)
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrMissingDate
	}
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// ISO returns the date as YYYY-MM-DD. It doubles as the grouping key.
func (d Date) ISO() string {
	return d.Format(ISODateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmount*100 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + o. Operands within MaxTotalCents cannot overflow.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sum adds up the amounts of entries. Callers hold entries that passed
// CheckedSum, as every store and reader does on insertion.
func Sum(entries []Entry) Money {
	var total Money
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// CheckedSum is Sum that fails with ErrTotalTooLarge once the running total
// passes MaxTotalCents.
func CheckedSum(entries []Entry) (Money, error) {
	var total Money
	for _, e := range entries {
		if e.Amount.Cents > MaxTotalCents-total.Cents {
			return Money{}, ErrTotalTooLarge
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrMissingID
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := validateType(e.Type); err != nil {
		return err
	}
	return e.Amount.Validate()
}

// Entries validates the request and expands it into Quantity entries, each
// carrying a fresh id from ids. Nothing is produced when any field is invalid.
func (r AddRequest) Entries(ids IDGenerator) ([]Entry, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	cents, err := ParseDecimalToCents(r.Amount)
	if err != nil {
		return nil, err
	}
	if r.Quantity < 1 || r.Quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidQuantity, r.Quantity, MaxQuantity)
	}
	typ := strings.TrimSpace(r.Type)
	if err := validateType(typ); err != nil {
		return nil, err
	}

	out := make([]Entry, r.Quantity)
	for i := range out {
		out[i] = Entry{
			ID:     ids.NewID(),
			Type:   typ,
			Date:   date,
			Amount: Money{Cents: cents},
		}
	}
	return out, nil
}

func validateType(t string) error {
	t = strings.TrimSpace(t)
	if t == "" {
		return ErrEmptyType
	}
	if len(t) > MaxTypeLength {
		return ErrTypeTooLong
	}
	// A line break would forge extra lines in the plain-text receipt.
	if strings.IndexFunc(t, unicode.IsControl) >= 0 {
		return ErrInvalidType
	}
	return nil
}
