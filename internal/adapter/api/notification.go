package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/the-chronicles/Creditflow/internal/domain/notification"
)

func (c *Client) Notifications(ctx context.Context) ([]notification.Record, error) {
	var out []notification.Record
	if err := c.getJSON(ctx, "/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodPatch,
		"/notifications/"+url.PathEscape(id)+"/read", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
