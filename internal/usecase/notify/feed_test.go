package notify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/domain/notification"
	"github.com/the-chronicles/Creditflow/internal/domain/session"
)

func TestFeed_PrependKeepsMostRecentFirst(t *testing.T) {
	f := NewFeed()
	f.Replace([]notification.Record{{ID: "old", Message: "first"}})
	f.Prepend(notification.Record{ID: "new", Message: "second"})

	items := f.Items()
	if len(items) != 2 || items[0].ID != "new" || items[1].ID != "old" {
		t.Fatalf("order = %+v, want new before old", items)
	}
}

func TestFeed_ReplaceKeepsLocalReadFlags(t *testing.T) {
	f := NewFeed()
	f.Replace([]notification.Record{{ID: "a"}, {ID: "b"}})
	if !f.MarkRead("a") {
		t.Fatal("MarkRead(a) should find the record")
	}

	// Server refetch still says "a" is unread; the local mark wins.
	f.Replace([]notification.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	for _, n := range f.Items() {
		if n.ID == "a" && !n.Read {
			t.Fatal("local read flag lost on replace")
		}
	}
	if got := f.UnreadCount(); got != 2 {
		t.Fatalf("unread = %d, want 2", got)
	}
}

func TestFeed_MarkReadUnknownID(t *testing.T) {
	f := NewFeed()
	if f.MarkRead("ghost") {
		t.Fatal("marking an absent id should report false")
	}
}

// mockRemote implements RemoteAPI.
type mockRemote struct {
	NotificationsFn        func(ctx context.Context) ([]notification.Record, error)
	MarkNotificationReadFn func(ctx context.Context, id string) error
}

func (m *mockRemote) Notifications(ctx context.Context) ([]notification.Record, error) {
	if m.NotificationsFn != nil {
		return m.NotificationsFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRemote) MarkNotificationRead(ctx context.Context, id string) error {
	if m.MarkNotificationReadFn != nil {
		return m.MarkNotificationReadFn(ctx, id)
	}
	return errors.New("not implemented")
}

func TestService_RefreshSilentDegrade(t *testing.T) {
	hub := NewHub()
	ctx := session.WithID(context.Background(), "s1")
	hub.Feed("s1").Prepend(notification.Record{ID: "kept"})

	s := NewService(&mockRemote{
		NotificationsFn: func(ctx context.Context) ([]notification.Record, error) {
			return nil, errors.New("down")
		},
	}, hub, zap.NewNop())

	items := s.Refresh(ctx)
	if len(items) != 1 || items[0].ID != "kept" {
		t.Fatalf("failed refresh should keep the current feed, got %+v", items)
	}
}

func TestService_MarkReadRequiresRemoteSuccess(t *testing.T) {
	hub := NewHub()
	ctx := session.WithID(context.Background(), "s1")
	hub.Feed("s1").Replace([]notification.Record{{ID: "n1"}})

	s := NewService(&mockRemote{
		MarkNotificationReadFn: func(ctx context.Context, id string) error {
			return errors.New("409")
		},
	}, hub, zap.NewNop())

	if err := s.MarkRead(ctx, "n1"); err == nil {
		t.Fatal("expected the remote failure to surface")
	}
	if s.Items(ctx)[0].Read {
		t.Fatal("local flag must not flip when the remote call failed")
	}

	ok := &mockRemote{
		MarkNotificationReadFn: func(ctx context.Context, id string) error { return nil },
	}
	if err := NewService(ok, hub, zap.NewNop()).MarkRead(ctx, "n1"); err != nil {
		t.Fatalf("MarkRead err: %v", err)
	}
	if !hub.Feed("s1").Items()[0].Read {
		t.Fatal("local flag should flip after remote success")
	}
}

func TestService_OnPushPrependsPerSession(t *testing.T) {
	hub := NewHub()
	s := NewService(&mockRemote{}, hub, zap.NewNop())

	s.OnPush("s1", notification.Record{ID: "p1", Message: "loan approved"})
	s.OnPush("s1", notification.Record{ID: "p2", Message: "payment due"})
	s.OnPush("s2", notification.Record{ID: "q1", Message: "other session"})

	ctx := session.WithID(context.Background(), "s1")
	items := s.Items(ctx)
	if len(items) != 2 || items[0].ID != "p2" {
		t.Fatalf("push order wrong: %+v", items)
	}
	if s.UnreadCount(ctx) != 2 {
		t.Fatalf("unread = %d, want 2", s.UnreadCount(ctx))
	}

	hub.Drop("s2")
	other := session.WithID(context.Background(), "s2")
	if len(s.Items(other)) != 0 {
		t.Fatal("dropped session should start from an empty feed")
	}
}
