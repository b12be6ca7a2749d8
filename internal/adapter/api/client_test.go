package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/domain/loan"
)

type staticTokens string

func (s staticTokens) Token(context.Context) string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens("tok-123"), zap.NewNop())
	_, err := c.MyLoans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_ProceedsWithoutToken(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens(""), zap.NewNop())
	records, err := c.MyLoans(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth, "unauthenticated call must not send an Authorization header")
	assert.Empty(t, records)
}

func TestClient_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"income is required","field":"income"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens("t"), zap.NewNop())
	_, err := c.Loan(context.Background(), "abc")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "income is required", apiErr.Message)
	assert.JSONEq(t, `{"message":"income is required","field":"income"}`, string(apiErr.Body))
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in["email"] != "b@example.com" || in["password"] != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":"u1","name":"Bo","email":"b@example.com"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens(""), zap.NewNop())

	res, err := c.Login(context.Background(), "b@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "u1", res.User.ID)

	_, err = c.Login(context.Background(), "b@example.com", "wrong")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_Apply_MultipartShape(t *testing.T) {
	var created loan.Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/loan/apply", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.NotEmpty(t, r.Header.Get("Ax-Request-Id"))
		assert.Equal(t, "personal", r.FormValue("loanType"))
		assert.Equal(t, "250", r.FormValue("amount"))
		assert.Equal(t, "8", r.FormValue("installments"))
		assert.Equal(t, "true", r.FormValue("hasDirectDeposit"))

		f, hdr, err := r.FormFile("document")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "id.png", hdr.Filename)

		created = loan.Record{ID: "l1", LoanType: "personal", Amount: 250, Status: loan.StatusPending}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens("tok"), zap.NewNop())
	draft := loan.ApplicationDraft{
		LoanType:         "personal",
		Amount:           "250",
		PaymentFrequency: "weekly",
		Installments:     "8",
		Purpose:          "car repair",
		Employment:       "full_time",
		Income:           "2500",
		PayFrequency:     "biweekly",
		NextPayDate:      "2999-01-15",
		HasDirectDeposit: true,
	}
	doc := &Document{Filename: "id.png", Content: strings.NewReader("fake-png-bytes")}

	rec, err := c.Apply(context.Background(), draft, doc)
	require.NoError(t, err)
	assert.Equal(t, "l1", rec.ID)
	assert.Equal(t, loan.StatusPending, rec.Status)
}

func TestClient_MarkNotificationRead(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens("tok"), zap.NewNop())
	require.NoError(t, c.MarkNotificationRead(context.Background(), "n42"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/notifications/n42/read", gotPath)
}

func TestClient_NetworkFailure(t *testing.T) {
	// Closed server → connection refused must surface as a wrapped error,
	// not an *Error (there is no HTTP status to report).
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, staticTokens("tok"), zap.NewNop())
	_, err := c.MyLoans(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}
