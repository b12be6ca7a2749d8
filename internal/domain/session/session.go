package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// User is the identity returned by the remote auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session holds the remote bearer token and the user it belongs to.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type ctxKey struct{}

// WithID attaches the caller's session id to ctx.
func WithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}

// IDFromContext returns the session id attached by WithID, or "" for an
// anonymous caller.
func IDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKey{}).(string)
	return sid
}

// Store is the single holder of credential state. Every network-call builder
// depends on this interface instead of reading ambient storage.
type Store interface {
	// Token returns the bearer token for sid, or "" when no session exists.
	Token(ctx context.Context, sid string) string
	// User returns the stored identity; ErrNotFound when no session exists.
	User(ctx context.Context, sid string) (User, error)
	// Set stores s under sid, replacing any previous session.
	Set(ctx context.Context, sid string, s Session) error
	// Clear removes the session; clearing an absent session is not an error.
	Clear(ctx context.Context, sid string) error
}
