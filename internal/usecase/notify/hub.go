package notify

import "sync"

// Hub holds one Feed per session. Feeds appear lazily and are dropped at
// logout together with the session itself.
type Hub struct {
	mu    sync.Mutex
	feeds map[string]*Feed
}

func NewHub() *Hub { return &Hub{feeds: map[string]*Feed{}} }

// Feed returns the feed for sid, creating it on first use.
func (h *Hub) Feed(sid string) *Feed {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, ok := h.feeds[sid]
	if !ok {
		f = NewFeed()
		h.feeds[sid] = f
	}
	return f
}

// Drop discards the feed for sid.
func (h *Hub) Drop(sid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.feeds, sid)
}
