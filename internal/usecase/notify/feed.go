package notify

import (
	"sync"

	"github.com/the-chronicles/Creditflow/internal/domain/notification"
)

// Feed is the in-memory notification list, most recent first. The push
// channel prepends concurrently with request handling, so access is locked.
type Feed struct {
	mu    sync.Mutex
	items []notification.Record
}

func NewFeed() *Feed { return &Feed{items: []notification.Record{}} }

// Replace swaps in a freshly fetched list, keeping the local read flags of
// any record the server still reports unread (last-write-wins by id: a local
// mark-as-read beats a stale unread from the server).
func (f *Feed) Replace(items []notification.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	read := make(map[string]bool, len(f.items))
	for _, n := range f.items {
		if n.Read {
			read[n.ID] = true
		}
	}
	next := make([]notification.Record, len(items))
	copy(next, items)
	for i := range next {
		if read[next[i].ID] {
			next[i].Read = true
		}
	}
	f.items = next
}

// Prepend puts a pushed notification at the head of the list.
func (f *Feed) Prepend(n notification.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]notification.Record{n}, f.items...)
}

// MarkRead flips the read flag locally. Returns false when the id is not in
// the feed.
func (f *Feed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return true
		}
	}
	return false
}

// Items returns a copy of the current list, most recent first.
func (f *Feed) Items() []notification.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notification.Record, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}
