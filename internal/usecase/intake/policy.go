package intake

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Mode selects how an installment payment is derived from the principal.
type Mode string

const (
	// ModeFlat splits a simple-interest total evenly across installments.
	ModeFlat Mode = "flat"
	// ModeAmortized uses the standard amortizing-payment formula with a
	// monthly rate.
	ModeAmortized Mode = "amortized"
)

type PaymentFrequency string

const (
	FrequencyWeekly  PaymentFrequency = "weekly"
	FrequencyMonthly PaymentFrequency = "monthly"
)

type InstallmentOption struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

// Policy captures one product revision: amount bounds, payment math, and the
// installment counts offered per payment frequency. Both observed revisions
// ship; which one is live is a config choice, not a code change.
type Policy struct {
	Name       string
	MinAmount  decimal.Decimal
	MaxAmount  decimal.Decimal
	AnnualRate decimal.Decimal
	Mode       Mode

	options map[PaymentFrequency][]InstallmentOption
}

var annualRate = decimal.RequireFromString("0.089")

// MicroPolicy is the short-term micro-loan revision: $50–$500, flat
// simple-interest split, weekly or monthly installments.
func MicroPolicy() Policy {
	return Policy{
		Name:       "micro",
		MinAmount:  decimal.NewFromInt(50),
		MaxAmount:  decimal.NewFromInt(500),
		AnnualRate: annualRate,
		Mode:       ModeFlat,
		options: map[PaymentFrequency][]InstallmentOption{
			FrequencyWeekly: {
				{Count: 4, Label: "4 weekly payments"},
				{Count: 8, Label: "8 weekly payments"},
				{Count: 12, Label: "12 weekly payments"},
			},
			FrequencyMonthly: {
				{Count: 1, Label: "1 monthly payment"},
				{Count: 2, Label: "2 monthly payments"},
				{Count: 3, Label: "3 monthly payments"},
				{Count: 6, Label: "6 monthly payments"},
			},
		},
	}
}

// StandardPolicy is the earlier amortized revision: $1–$100,000 over
// 12–60 monthly terms.
func StandardPolicy() Policy {
	return Policy{
		Name:       "standard",
		MinAmount:  decimal.NewFromInt(1),
		MaxAmount:  decimal.NewFromInt(100000),
		AnnualRate: annualRate,
		Mode:       ModeAmortized,
		options: map[PaymentFrequency][]InstallmentOption{
			FrequencyMonthly: {
				{Count: 12, Label: "12 months (1 year)"},
				{Count: 24, Label: "24 months (2 years)"},
				{Count: 36, Label: "36 months (3 years)"},
				{Count: 48, Label: "48 months (4 years)"},
				{Count: 60, Label: "60 months (5 years)"},
			},
		},
	}
}

// PolicyByName resolves the configured revision.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "micro", "":
		return MicroPolicy(), nil
	case "standard":
		return StandardPolicy(), nil
	}
	return Policy{}, fmt.Errorf("unknown loan policy %q", name)
}

// InstallmentOptions returns the ordered option set for freq. Unknown
// frequencies yield nil.
func (p Policy) InstallmentOptions(freq PaymentFrequency) []InstallmentOption {
	return p.options[freq]
}

// AllowsInstallments reports whether count is a member of the option set for
// freq.
func (p Policy) AllowsInstallments(freq PaymentFrequency, count int) bool {
	for _, opt := range p.options[freq] {
		if opt.Count == count {
			return true
		}
	}
	return false
}

// AllowsFrequency reports whether the policy offers any installment options
// for freq.
func (p Policy) AllowsFrequency(freq PaymentFrequency) bool {
	return len(p.options[freq]) > 0
}

// Frequencies lists the payment frequencies this policy offers, weekly first.
func (p Policy) Frequencies() []PaymentFrequency {
	var out []PaymentFrequency
	for _, f := range []PaymentFrequency{FrequencyWeekly, FrequencyMonthly} {
		if len(p.options[f]) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// ReconcileInstallments returns the installment selection to keep after the
// payment frequency changed. A selection outside the new frequency's option
// set is cleared; callers must treat this as mandatory cleanup, otherwise a
// stale count can ride along into a submit.
func (p Policy) ReconcileInstallments(freq PaymentFrequency, current int) (int, bool) {
	if p.AllowsInstallments(freq, current) {
		return current, true
	}
	return 0, false
}
