package intake

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimate_ZeroGuard(t *testing.T) {
	p := MicroPolicy()
	principal := decimal.NewFromInt(250)

	for _, n := range []int{0, -1, -12} {
		est := p.Estimate(principal, n)
		if !est.Payment.IsZero() || !est.Total.IsZero() {
			t.Fatalf("n=%d: payment=%s total=%s, want zeros", n, est.Payment, est.Total)
		}
		if est.PaymentString() != "0.00" || est.TotalString() != "0.00" {
			t.Fatalf("n=%d: formatted %q/%q, want 0.00/0.00", n, est.PaymentString(), est.TotalString())
		}
	}
}

func TestEstimate_FlatSplit(t *testing.T) {
	p := MicroPolicy()

	// 500 * 1.089 = 544.50 over 4 installments
	est := p.Estimate(decimal.NewFromInt(500), 4)
	if got := est.PaymentString(); got != "136.13" {
		t.Fatalf("payment = %s, want 136.13", got)
	}
	if got := est.TotalString(); got != "544.50" {
		t.Fatalf("total = %s, want 544.50", got)
	}
}

func TestEstimate_TotalIsPaymentTimesCount(t *testing.T) {
	cases := []struct {
		policy Policy
		amount int64
		n      int
	}{
		{MicroPolicy(), 50, 4},
		{MicroPolicy(), 500, 12},
		{MicroPolicy(), 325, 6},
		{StandardPolicy(), 10000, 36},
		{StandardPolicy(), 100000, 60},
		{StandardPolicy(), 1, 12},
	}
	for _, tc := range cases {
		est := tc.policy.Estimate(decimal.NewFromInt(tc.amount), tc.n)
		want := est.Payment.Mul(decimal.NewFromInt(int64(tc.n)))
		if !est.Total.Equal(want) {
			t.Fatalf("%s amount=%d n=%d: total %s != payment*n %s",
				tc.policy.Name, tc.amount, tc.n, est.Total, want)
		}
	}
}

func TestEstimate_Amortized(t *testing.T) {
	p := StandardPolicy()
	est := p.Estimate(decimal.NewFromInt(10000), 36)

	// Classic annuity figure for $10,000 @ 8.9% over 36 months is about
	// $317.50; keep a loose window so decimal precision choices don't matter.
	got := est.Payment.InexactFloat64()
	if got < 317.0 || got > 318.0 {
		t.Fatalf("monthly payment = %v, want ~317.5", got)
	}
	// Interest must make the payment exceed the plain split.
	if plain := 10000.0 / 36.0; got <= plain {
		t.Fatalf("payment %v not above interest-free split %v", got, plain)
	}
	if est.Total.InexactFloat64() <= 10000 {
		t.Fatalf("total %s should exceed principal", est.Total)
	}
}

func TestParseAmount(t *testing.T) {
	for _, s := range []string{"50", "49.99", "0", "-3.5", "500.01"} {
		if _, ok := ParseAmount(s); !ok {
			t.Fatalf("ParseAmount(%q) should parse", s)
		}
	}
	for _, s := range []string{"", "abc", "12,50", "NaN", "1e3x"} {
		if _, ok := ParseAmount(s); ok {
			t.Fatalf("ParseAmount(%q) should fail", s)
		}
	}
}
