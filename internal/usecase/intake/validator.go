package intake

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/the-chronicles/Creditflow/internal/domain/loan"
)

// FieldError is one field-scoped violation. Validation reports every
// violation in a single pass so the form can render them all at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

var reDigits = regexp.MustCompile(`^[0-9]+$`)

// draftRules mirrors loan.ApplicationDraft with the validation contract
// attached. Amount bounds and incompatible installment sets come from the
// policy, so the rules live here rather than on the domain struct.
type draftRules struct {
	LoanType         string `json:"loanType" validate:"required,oneof=personal home auto education business"`
	Amount           string `json:"amount" validate:"required,amount"`
	PaymentFrequency string `json:"paymentFrequency" validate:"required,payfreq"`
	Installments     string `json:"installments" validate:"required"`
	Purpose          string `json:"purpose" validate:"required,min=3,max=500"`
	Employment       string `json:"employment" validate:"required,oneof=full_time part_time self_employed unemployed retired"`
	Income           string `json:"income" validate:"required,money"`
	PayFrequency     string `json:"payFrequency" validate:"required,oneof=weekly biweekly semimonthly monthly"`
	NextPayDate      string `json:"nextPayDate" validate:"required,paydate"`

	ShowPersonalInfo bool   `json:"showPersonalInfo"`
	SSN              string `json:"ssn" validate:"required_if=ShowPersonalInfo true,omitempty,min=9,max=11"`
	IDType           string `json:"idType" validate:"required_if=ShowPersonalInfo true,omitempty,oneof=drivers_license passport state_id"`

	AccountType   string `json:"accountType" validate:"omitempty,oneof=checking savings"`
	RoutingNumber string `json:"routingNumber" validate:"omitempty,digitsonly,len=9"`
	AccountNumber string `json:"accountNumber" validate:"omitempty,digitsonly,min=4,max=17"`
}

// DraftValidator checks an application draft against one policy revision.
// Pure: no side effects, never panics on expected bad input.
type DraftValidator struct {
	v      *validator.Validate
	policy Policy
}

func NewDraftValidator(p Policy) *DraftValidator {
	v := validator.New()

	// report json field names, not Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, ok := ParseAmount(fl.Field().String())
		if !ok {
			return false
		}
		return d.Cmp(p.MinAmount) >= 0 && d.Cmp(p.MaxAmount) <= 0
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, ok := ParseAmount(fl.Field().String())
		return ok && d.IsPositive()
	})
	_ = v.RegisterValidation("paydate", func(fl validator.FieldLevel) bool {
		d, err := parseDay(fl.Field().String())
		if err != nil {
			return false
		}
		y, m, day := d.UTC().Date()
		return !time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Before(today())
	})
	_ = v.RegisterValidation("digitsonly", func(fl validator.FieldLevel) bool {
		return reDigits.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("payfreq", func(fl validator.FieldLevel) bool {
		return p.AllowsFrequency(PaymentFrequency(fl.Field().String()))
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		d := sl.Current().Interface().(draftRules)
		if d.Installments == "" {
			return // required already reports
		}
		n, err := strconv.Atoi(d.Installments)
		if err != nil || !p.AllowsInstallments(PaymentFrequency(d.PaymentFrequency), n) {
			sl.ReportError(d.Installments, "installments", "Installments", "installmentset", "")
		}
	}, draftRules{})

	return &DraftValidator{v: v, policy: p}
}

// Validate returns every violation in draft, or an empty slice for an
// accepted draft. Text fields are compared after trimming.
func (dv *DraftValidator) Validate(draft loan.ApplicationDraft) FieldErrors {
	r := draftRules{
		LoanType:         strings.TrimSpace(draft.LoanType),
		Amount:           strings.TrimSpace(draft.Amount),
		PaymentFrequency: strings.TrimSpace(draft.PaymentFrequency),
		Installments:     strings.TrimSpace(draft.Installments),
		Purpose:          strings.TrimSpace(draft.Purpose),
		Employment:       strings.TrimSpace(draft.Employment),
		Income:           strings.TrimSpace(draft.Income),
		PayFrequency:     strings.TrimSpace(draft.PayFrequency),
		NextPayDate:      strings.TrimSpace(draft.NextPayDate),
		ShowPersonalInfo: draft.ShowPersonalInfo,
		SSN:              strings.TrimSpace(draft.SSN),
		IDType:           strings.TrimSpace(draft.IDType),
		AccountType:      strings.TrimSpace(draft.AccountType),
		RoutingNumber:    strings.TrimSpace(draft.RoutingNumber),
		AccountNumber:    strings.TrimSpace(draft.AccountNumber),
	}

	err := dv.v.Struct(r)
	if err == nil {
		return FieldErrors{}
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "_", Message: err.Error()}}
	}

	out := make(FieldErrors, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{Field: e.Field(), Message: dv.message(e)})
	}
	return out
}

func (dv *DraftValidator) message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(e.Param()), ", ")
	case "payfreq":
		return "must be a supported payment frequency"
	case "amount":
		return fmt.Sprintf("must be a number between $%s and $%s",
			dv.policy.MinAmount.StringFixed(0), dv.policy.MaxAmount.StringFixed(0))
	case "money":
		return "must be a positive number"
	case "paydate":
		return "must be a valid date no earlier than today"
	case "installmentset":
		return "must match an installment option for the selected payment frequency"
	case "digitsonly":
		return "must contain only digits"
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	}
	return e.Tag() + " validation failed"
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
