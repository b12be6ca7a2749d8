package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/the-chronicles/Creditflow/internal/usecase/notify"
)

type NotificationHandler struct {
	svc *notify.Service
}

func NewNotificationHandler(svc *notify.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List refreshes the feed from the server and returns it with the unread
// count. A failed refresh serves whatever the feed already holds.
func (h *NotificationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	items := h.svc.Refresh(ctx)
	return c.JSON(http.StatusOK, map[string]any{
		"notifications": items,
		"unread":        h.svc.UnreadCount(ctx),
	})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.svc.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "could not mark notification read"})
	}
	return c.NoContent(http.StatusNoContent)
}
