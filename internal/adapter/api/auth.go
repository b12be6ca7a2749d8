package api

import (
	"context"

	"github.com/the-chronicles/Creditflow/internal/domain/session"
)

// AuthResult is the remote auth response: the bearer token plus the user it
// identifies, passed through unchanged.
type AuthResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	in := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.postJSON(ctx, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	in := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResult
	if err := c.postJSON(ctx, "/auth/signup", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
