package sessionstore

import (
	"context"

	"github.com/the-chronicles/Creditflow/internal/domain/session"
)

// ContextTokens adapts a session Store to the API client's TokenSource: the
// session id travels in the request context, the token lives in the store.
type ContextTokens struct {
	store session.Store
}

func NewContextTokens(store session.Store) *ContextTokens {
	return &ContextTokens{store: store}
}

func (t *ContextTokens) Token(ctx context.Context) string {
	sid := session.IDFromContext(ctx)
	if sid == "" {
		return ""
	}
	return t.store.Token(ctx, sid)
}
