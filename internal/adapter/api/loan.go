package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/the-chronicles/Creditflow/internal/domain/loan"
)

// Document is an optional identity attachment for an application.
type Document struct {
	Filename string
	Content  io.Reader
}

// Apply submits a validated draft as a multipart form, with the document
// attached when present. One user submit maps to exactly one call here; the
// Ax-Request-Id header lets the server de-duplicate rather than this client
// retrying.
func (c *Client) Apply(ctx context.Context, draft loan.ApplicationDraft, doc *Document) (*loan.Record, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"loanType":         draft.LoanType,
		"amount":           draft.Amount,
		"paymentFrequency": draft.PaymentFrequency,
		"installments":     draft.Installments,
		"purpose":          draft.Purpose,
		"employment":       draft.Employment,
		"income":           draft.Income,
		"payFrequency":     draft.PayFrequency,
		"nextPayDate":      draft.NextPayDate,
		"hasDirectDeposit": strconv.FormatBool(draft.HasDirectDeposit),
	}
	if draft.ShowPersonalInfo {
		fields["ssn"] = draft.SSN
		fields["idType"] = draft.IDType
	}
	if draft.AccountNumber != "" {
		fields["accountType"] = draft.AccountType
		fields["routingNumber"] = draft.RoutingNumber
		fields["accountNumber"] = draft.AccountNumber
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("build apply form: %w", err)
		}
	}
	if doc != nil {
		part, err := w.CreateFormFile("document", doc.Filename)
		if err != nil {
			return nil, fmt.Errorf("build apply form: %w", err)
		}
		if _, err := io.Copy(part, doc.Content); err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/loan/apply", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Ax-Request-Id", uuid.NewString())

	var created loan.Record
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) MyLoans(ctx context.Context) ([]loan.Record, error) {
	var out []loan.Record
	if err := c.getJSON(ctx, "/loan/my-loans", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Loan(ctx context.Context, id string) (*loan.Record, error) {
	var out loan.Record
	if err := c.getJSON(ctx, "/loan/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyRepayments(ctx context.Context) ([]loan.Repayment, error) {
	var out []loan.Repayment
	if err := c.getJSON(ctx, "/repayment/my-repayments", &out); err != nil {
		return nil, err
	}
	return out, nil
}
