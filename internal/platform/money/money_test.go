package money

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{in: "12.50", want: 1250},
		{in: "12.5", want: 1250},
		{in: "12", want: 1200},
		{in: " 0.99 ", want: 99},
		{in: "0", want: 0},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "1.234", "-1", "1.", ".50", "1,50", "99999999999999999999"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("Parse(%q) error = %v, want ErrInvalidPrice", in, err)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	t.Parallel()

	for _, cents := range []int64{0, 5, 99, 1250, 100000} {
		got, err := Parse(Decimal(cents))
		if err != nil {
			t.Fatalf("Parse(Decimal(%d)) error = %v", cents, err)
		}
		if got != cents {
			t.Fatalf("Parse(Decimal(%d)) = %d", cents, got)
		}
	}
}

func TestFormatterFormat(t *testing.T) {
	t.Parallel()

	f, err := NewFormatter("", "")
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	if f.Code() != "USD" {
		t.Fatalf("Code() = %q, want %q", f.Code(), "USD")
	}
	got := f.Format(1250)
	if !strings.Contains(got, "12.50") {
		t.Fatalf("Format(1250) = %q, want it to contain %q", got, "12.50")
	}
	if !strings.Contains(got, "$") {
		t.Fatalf("Format(1250) = %q, want a dollar symbol", got)
	}
}

func TestNewFormatterRejectsUnknownCurrency(t *testing.T) {
	t.Parallel()

	if _, err := NewFormatter("XYZQ", ""); err == nil {
		t.Fatal("expected unknown currency error")
	}
}

func TestZeroFormatterFallsBackToDecimal(t *testing.T) {
	t.Parallel()

	if got := (Formatter{}).Format(705); got != "7.05" {
		t.Fatalf("Format() = %q, want %q", got, "7.05")
	}
}
