package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/the-chronicles/Creditflow/internal/usecase/intake"
)

// ErrorResponse is the uniform error payload. Details carries field-scoped
// validation errors when present.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Details intake.FieldErrors `json:"details,omitempty"`
}

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
