package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-01-05 ")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.ISO() != "2024-01-05" {
		t.Fatalf("ISO() = %q", d.ISO())
	}
	if _, err := ParseDate(""); !errors.Is(err, ErrMissingDate) {
		t.Fatalf("expected ErrMissingDate, got %v", err)
	}
	if _, err := ParseDate("05/01/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestAddRequestEntries(t *testing.T) {
	ids := &SequenceGenerator{Prefix: "e"}
	got, err := AddRequest{Type: " court ", Date: "2024-01-05", Amount: "600", Quantity: 3}.Entries(ids)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	seen := map[string]bool{}
	for i, e := range got {
		if e.Type != "court" || e.Date.ISO() != "2024-01-05" || e.Amount.Cents != 60000 {
			t.Fatalf("entry %d unexpected: %+v", i, e)
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			t.Fatalf("entry %d invalid: %v", i, err)
		}
	}
}

func TestAddRequestEntriesRejects(t *testing.T) {
	cases := []struct {
		name string
		req  AddRequest
		want error
	}{
		{"missing date", AddRequest{Type: "court", Amount: "600", Quantity: 1}, ErrMissingDate},
		{"bad date", AddRequest{Type: "court", Date: "2024-13-01", Amount: "600", Quantity: 1}, ErrInvalidDate},
		{"missing amount", AddRequest{Type: "court", Date: "2024-01-05", Quantity: 1}, ErrInvalidAmount},
		{"zero amount", AddRequest{Type: "court", Date: "2024-01-05", Amount: "0", Quantity: 1}, ErrInvalidAmount},
		{"zero quantity", AddRequest{Type: "court", Date: "2024-01-05", Amount: "600", Quantity: 0}, ErrInvalidQuantity},
		{"huge quantity", AddRequest{Type: "court", Date: "2024-01-05", Amount: "600", Quantity: MaxQuantity + 1}, ErrInvalidQuantity},
		{"empty type", AddRequest{Type: "  ", Date: "2024-01-05", Amount: "600", Quantity: 1}, ErrEmptyType},
		{"amount above cap", AddRequest{Type: "court", Date: "2024-01-05", Amount: "90000000000000000", Quantity: 2}, ErrInvalidAmount},
		{"amount just above cap", AddRequest{Type: "court", Date: "2024-01-05", Amount: "1000000000000.01", Quantity: 1}, ErrInvalidAmount},
		{"newline in type", AddRequest{Type: "court\n2. 01 Jan - fake", Date: "2024-01-05", Amount: "600", Quantity: 1}, ErrInvalidType},
		{"carriage return in type", AddRequest{Type: "court\rfood", Date: "2024-01-05", Amount: "600", Quantity: 1}, ErrInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.req.Entries(&SequenceGenerator{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected error to wrap ErrValidation, got %v", err)
			}
			if got != nil {
				t.Fatalf("expected no entries, got %d", len(got))
			}
		})
	}
}

func TestSum(t *testing.T) {
	entries := []Entry{
		{Amount: Money{Cents: 60000}},
		{Amount: Money{Cents: 30050}},
	}
	if got := Sum(entries); got.Cents != 90050 {
		t.Fatalf("Sum = %d", got.Cents)
	}
	if got := Sum(nil); got.Cents != 0 {
		t.Fatalf("Sum(nil) = %d", got.Cents)
	}
}

func TestLargestAddKeepsTotalPositive(t *testing.T) {
	got, err := AddRequest{Type: "court", Date: "2024-01-05", Amount: "1000000000000", Quantity: MaxQuantity}.Entries(&SequenceGenerator{})
	if err != nil {
		t.Fatalf("expected the cap itself to be accepted, got %v", err)
	}
	total, err := CheckedSum(got)
	if err != nil {
		t.Fatalf("CheckedSum: %v", err)
	}
	if total.Cents != MaxAmount*100*MaxQuantity || total != Sum(got) {
		t.Fatalf("total = %d", total.Cents)
	}
}

func TestCheckedSumRejectsOverflow(t *testing.T) {
	big := Entry{Amount: Money{Cents: MaxAmount * 100}}
	entries := make([]Entry, MaxTotalCents/(MaxAmount*100)+1)
	for i := range entries {
		entries[i] = big
	}
	if _, err := CheckedSum(entries[:len(entries)-1]); err != nil {
		t.Fatalf("total at the cap should pass, got %v", err)
	}
	if _, err := CheckedSum(entries); !errors.Is(err, ErrTotalTooLarge) {
		t.Fatalf("expected ErrTotalTooLarge, got %v", err)
	}
}

func TestUUIDGeneratorUnique(t *testing.T) {
	var g UUIDGenerator
	a, b := g.NewID(), g.NewID()
	if a == "" || a == b {
		t.Fatalf("expected distinct ids, got %q and %q", a, b)
	}
}
