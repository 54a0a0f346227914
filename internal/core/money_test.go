package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"600", 60000, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{".5", 50, true},
		{" 2.50 ", 250, true},
		{"1.005", 0, false}, // more than two decimals
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		60000:  "600",
		1250:   "12.5",
		1205:   "12.05",
		5:      "0.05",
		0:      "0",
		-1250:  "-12.5",
		123456: "1234.56",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Errorf("Money{%d}.String() = %q, want %q", cents, got, want)
		}
	}
}

func TestMoneyDecimalIsExact(t *testing.T) {
	a, b := MustMoney("0.1"), MustMoney("0.2")
	sum := a.Add(b)
	if !sum.Decimal().Equal(MustMoney("0.3").Decimal()) {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", sum)
	}
	if _, err := ParseDecimalToCents("1e3"); err == nil {
		t.Fatalf("exponent notation should be rejected")
	}
	if _, err := ParseDecimalToCents("99999999999999999999"); err == nil {
		t.Fatalf("overflowing amount should be rejected")
	}
	if got, err := ParseDecimalToCents("1000000000000"); err != nil || got != MaxAmount*100 {
		t.Fatalf("MaxAmount should be accepted, got %d (err=%v)", got, err)
	}
}

func TestMoneySplitAndMarshalText(t *testing.T) {
	whole, cents := Money{Cents: 123456789}.Split()
	if whole != 1234567 || cents != 89 {
		t.Fatalf("Split() = %d, %d", whole, cents)
	}
	b, err := Money{Cents: 1250}.MarshalText()
	if err != nil || string(b) != "12.5" {
		t.Fatalf("MarshalText() = %q, %v", b, err)
	}
}
