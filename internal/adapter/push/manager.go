package push

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type conn struct {
	cancel context.CancelFunc
}

// Manager owns one push connection per logged-in session. Connections are
// opened at login and must be cancelled at logout or shutdown; an orphaned
// reader updating a dead session's feed is a bug, not a cleanup nicety.
type Manager struct {
	listener *Listener
	sinkFor  func(sid string) Sink
	log      *zap.Logger

	mu    sync.Mutex
	conns map[string]*conn
}

func NewManager(listener *Listener, sinkFor func(sid string) Sink, log *zap.Logger) *Manager {
	return &Manager{
		listener: listener,
		sinkFor:  sinkFor,
		log:      log,
		conns:    map[string]*conn{},
	}
}

// Start opens the channel for sid with the session's remote token,
// replacing any previous connection for the same session.
func (m *Manager) Start(sid, token string) {
	ctx, cancel := context.WithCancel(context.Background())
	h := &conn{cancel: cancel}

	m.mu.Lock()
	if prev, ok := m.conns[sid]; ok {
		prev.cancel()
	}
	m.conns[sid] = h
	m.mu.Unlock()

	go func() {
		err := m.listener.Listen(ctx, token, m.sinkFor(sid))
		if err != nil && !errors.Is(err, context.Canceled) {
			m.log.Warn("push channel closed", zap.String("sid", sid), zap.Error(err))
		}
		m.mu.Lock()
		if m.conns[sid] == h {
			delete(m.conns, sid)
		}
		m.mu.Unlock()
	}()
}

// Stop tears down the channel for sid, if any.
func (m *Manager) Stop(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.conns[sid]; ok {
		h.cancel()
		delete(m.conns, sid)
	}
}

// Shutdown cancels every open channel.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sid, h := range m.conns {
		h.cancel()
		delete(m.conns, sid)
	}
}
