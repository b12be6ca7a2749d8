package intake

import "github.com/shopspring/decimal"

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Estimate is a derived payment figure. The values are full-precision; the
// String helpers apply the two-decimal display formatting.
type Estimate struct {
	Payment decimal.Decimal
	Total   decimal.Decimal
	Rate    decimal.Decimal
}

// Estimate computes the per-installment payment and total repayment for a
// principal over n installments.
//
// The zero guard is a display contract: the figure is rendered directly as a
// currency amount, so n <= 0 (unset, cleared, or unparsable upstream) must
// produce exact zeros, never a NaN or a panic.
func (p Policy) Estimate(principal decimal.Decimal, n int) Estimate {
	est := Estimate{Rate: p.AnnualRate}
	if n <= 0 {
		return est
	}

	count := decimal.NewFromInt(int64(n))
	switch p.Mode {
	case ModeAmortized:
		// payment = P*r*(1+r)^n / ((1+r)^n - 1), r = annual/12
		r := p.AnnualRate.Div(twelve)
		if r.IsZero() {
			est.Payment = principal.Div(count)
			break
		}
		growth := one.Add(r).Pow(count)
		est.Payment = principal.Mul(r).Mul(growth).Div(growth.Sub(one))
	default:
		// payment = P*(1+rate)/n
		est.Payment = principal.Mul(one.Add(p.AnnualRate)).Div(count)
	}
	est.Total = est.Payment.Mul(count)
	return est
}

func (e Estimate) PaymentString() string { return e.Payment.StringFixed(2) }
func (e Estimate) TotalString() string   { return e.Total.StringFixed(2) }

// ParseAmount parses user-entered money text. The bool is false for anything
// that is not a plain finite number.
func ParseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
