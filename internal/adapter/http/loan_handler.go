package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/adapter/api"
	"github.com/the-chronicles/Creditflow/internal/domain/loan"
	"github.com/the-chronicles/Creditflow/internal/usecase/intake"
	"github.com/the-chronicles/Creditflow/internal/usecase/loans"
)

// SubmitAPI is the slice of the remote client that carries an application.
type SubmitAPI interface {
	Apply(ctx context.Context, draft loan.ApplicationDraft, doc *api.Document) (*loan.Record, error)
}

type LoanHandler struct {
	validator *intake.DraftValidator
	policy    intake.Policy
	remote    SubmitAPI
	loans     *loans.Service
	log       *zap.Logger
}

func NewLoanHandler(v *intake.DraftValidator, p intake.Policy, remote SubmitAPI, svc *loans.Service, log *zap.Logger) *LoanHandler {
	return &LoanHandler{validator: v, policy: p, remote: remote, loans: svc, log: log}
}

// Options describes the live intake policy so the form can render its
// choices without hardcoding them.
func (h *LoanHandler) Options(c echo.Context) error {
	opts := map[string]any{
		"minAmount":  h.policy.MinAmount.StringFixed(0),
		"maxAmount":  h.policy.MaxAmount.StringFixed(0),
		"annualRate": h.policy.AnnualRate.String(),
	}
	installments := map[string][]intake.InstallmentOption{}
	for _, f := range h.policy.Frequencies() {
		installments[string(f)] = h.policy.InstallmentOptions(f)
	}
	opts["installments"] = installments
	return c.JSON(http.StatusOK, opts)
}

// Estimate previews the per-installment payment for an amount and count.
// Bad or missing inputs produce exact zeros rather than an error: the figure
// feeds straight into the form's live preview.
func (h *LoanHandler) Estimate(c echo.Context) error {
	principal, ok := intake.ParseAmount(c.QueryParam("amount"))
	if !ok {
		principal = decimal.Zero
	}
	n, _ := strconv.Atoi(c.QueryParam("installments"))

	est := h.policy.Estimate(principal, n)
	return c.JSON(http.StatusOK, map[string]string{
		"payment": est.PaymentString(),
		"total":   est.TotalString(),
		"rate":    est.Rate.String(),
	})
}

// Apply accepts the multipart application form. The direct-deposit gate runs
// before anything else: an ineligible draft never reaches the remote API.
func (h *LoanHandler) Apply(c echo.Context) error {
	var draft loan.ApplicationDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed application"})
	}

	if !draft.HasDirectDeposit {
		return c.JSON(http.StatusOK, map[string]any{
			"outcome": "ineligible",
			"reason":  loan.ErrDirectDepositOnly.Error(),
		})
	}

	if ferrs := h.validator.Validate(draft); len(ferrs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   loan.ErrInvalidApplication.Error(),
			Details: ferrs,
		})
	}

	var doc *api.Document
	if fh, err := c.FormFile("document"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not read attached document"})
		}
		defer f.Close()
		doc = &api.Document{Filename: fh.Filename, Content: f}
	}

	rec, err := h.remote.Apply(c.Request().Context(), draft, doc)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return c.JSON(apiErr.Status, ErrorResponse{Error: apiErr.Message})
		}
		h.log.Error("loan submission failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "submission is unavailable right now"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// List returns the borrower's loans partitioned into pending, active and
// past buckets. Always 200: transport failure renders as empty buckets.
func (h *LoanHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.loans.Buckets(c.Request().Context()))
}

func (h *LoanHandler) Detail(c echo.Context) error {
	rec, err := h.loans.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, loan.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: loan.ErrNotFound.Error()})
		}
		h.log.Error("loan detail failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "loan detail is unavailable right now"})
	}
	return c.JSON(http.StatusOK, rec)
}

// Repayments lists upcoming repayments, oldest due first. Always 200.
func (h *LoanHandler) Repayments(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"repayments": h.loans.UpcomingRepayments(c.Request().Context()),
	})
}
