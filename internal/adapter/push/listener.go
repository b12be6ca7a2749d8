package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/domain/notification"
)

// Event is one frame off the push channel.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// Sink receives decoded push events. Callbacks run on the listener's
// goroutine; implementations must be safe to call from there.
type Sink interface {
	OnNotification(n notification.Record)
	OnProductDeleted(id string)
}

// Listener holds a long-lived duplex connection to the API host. It is
// opened for the lifetime of a session view and torn down by cancelling the
// context passed to Listen; in-flight reads stop instead of updating state
// that no longer has an owner.
type Listener struct {
	endpoint string
	dialer   *websocket.Dialer
	log      *zap.Logger
}

// NewListener builds a listener for the API host. rawURL may use http(s) or
// ws(s); it is normalized to the websocket scheme.
func NewListener(rawURL string, log *zap.Logger) *Listener {
	return &Listener{
		endpoint: toWebsocketURL(rawURL),
		dialer:   &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		log:      log,
	}
}

// Listen dials the channel with the session token in the handshake and
// decodes events into sink until ctx is cancelled or the peer closes.
// Returns ctx.Err() on cancellation, nil on a clean peer close.
func (l *Listener) Listen(ctx context.Context, token string, sink Sink) error {
	u, err := url.Parse(l.endpoint)
	if err != nil {
		return fmt.Errorf("push: bad endpoint: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := l.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("push: dial: %w", err)
	}

	// Unblock the read loop when the owner goes away.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
			_ = conn.Close()
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("push: read: %w", err)
		}
		l.dispatch(ev, sink)
	}
}

func (l *Listener) dispatch(ev Event, sink Sink) {
	switch ev.Name {
	case notification.EventNew:
		var n notification.Record
		if err := json.Unmarshal(ev.Data, &n); err != nil {
			l.log.Warn("push: malformed notification payload", zap.Error(err))
			return
		}
		sink.OnNotification(n)
	case notification.EventProductDeleted:
		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			l.log.Warn("push: malformed product-deleted payload", zap.Error(err))
			return
		}
		sink.OnProductDeleted(payload.ID)
	default:
		l.log.Debug("push: ignoring event", zap.String("event", ev.Name))
	}
}

func toWebsocketURL(raw string) string {
	switch {
	case strings.HasPrefix(raw, "https://"):
		return "wss://" + strings.TrimPrefix(raw, "https://")
	case strings.HasPrefix(raw, "http://"):
		return "ws://" + strings.TrimPrefix(raw, "http://")
	}
	return raw
}
