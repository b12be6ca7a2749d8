package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/domain/notification"
	"github.com/the-chronicles/Creditflow/internal/domain/session"
)

// RemoteAPI is the slice of the remote client this service consumes.
type RemoteAPI interface {
	Notifications(ctx context.Context) ([]notification.Record, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

type Service struct {
	remote RemoteAPI
	hub    *Hub
	log    *zap.Logger
}

func NewService(remote RemoteAPI, hub *Hub, log *zap.Logger) *Service {
	return &Service{remote: remote, hub: hub, log: log}
}

func (s *Service) feed(ctx context.Context) *Feed {
	return s.hub.Feed(session.IDFromContext(ctx))
}

// Refresh fetches the server's list into the caller's feed. A fetch failure
// keeps whatever the feed already holds; the dropdown never blocks the page.
func (s *Service) Refresh(ctx context.Context) []notification.Record {
	feed := s.feed(ctx)
	items, err := s.remote.Notifications(ctx)
	if err != nil {
		s.log.Warn("notification fetch failed, keeping current feed", zap.Error(err))
		return feed.Items()
	}
	feed.Replace(items)
	return feed.Items()
}

// MarkRead records the read flag remotely, then merges it locally. The local
// merge only happens after the server accepted the mutation.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	if err := s.remote.MarkNotificationRead(ctx, id); err != nil {
		return err
	}
	s.feed(ctx).MarkRead(id)
	return nil
}

// OnPush is the push-channel sink: new records land at the head of the
// session's feed.
func (s *Service) OnPush(sid string, n notification.Record) {
	s.hub.Feed(sid).Prepend(n)
}

func (s *Service) Items(ctx context.Context) []notification.Record { return s.feed(ctx).Items() }
func (s *Service) UnreadCount(ctx context.Context) int             { return s.feed(ctx).UnreadCount() }
