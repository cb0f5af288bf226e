// Package memory keeps a short, per-account window of recent conversation
// exchanges in process memory. Nothing is persisted.
package memory

import (
	"context"
	"sync"
)

// DefaultWindow is the number of exchanges retained per account.
const DefaultWindow = 5

// Exchange is one query and the answer given to it.
type Exchange struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

type slot struct {
	turn    chan struct{} // held by the active Conversation
	mu      sync.Mutex
	history []Exchange
}

// Store maps account ids to bounded exchange windows. Work for one account
// is serialized through Acquire; accounts never contend with each other.
type Store struct {
	window int

	mu    sync.Mutex
	slots map[string]*slot
}

func NewStore(window int) *Store {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Store{window: window, slots: make(map[string]*slot)}
}

func (s *Store) slotFor(id string) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[id]
	if !ok {
		sl = &slot{turn: make(chan struct{}, 1)}
		s.slots[id] = sl
	}
	return sl
}

// Acquire waits until no other Conversation for id is active, or ctx is
// done. The caller must Release the returned Conversation.
func (s *Store) Acquire(ctx context.Context, id string) (*Conversation, error) {
	sl := s.slotFor(id)
	select {
	case sl.turn <- struct{}{}:
		return &Conversation{store: s, slot: sl}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// History returns a copy of id's window, oldest first.
func (s *Store) History(id string) []Exchange {
	return s.slotFor(id).snapshot()
}

func (sl *slot) snapshot() []Exchange {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	out := make([]Exchange, len(sl.history))
	copy(out, sl.history)
	return out
}

// Conversation is exclusive access to one account's window.
type Conversation struct {
	store    *Store
	slot     *slot
	released bool
}

// History returns a copy of the window, oldest first.
func (c *Conversation) History() []Exchange {
	return c.slot.snapshot()
}

// Append records an exchange, evicting the oldest beyond the window.
func (c *Conversation) Append(user, bot string) {
	c.slot.mu.Lock()
	defer c.slot.mu.Unlock()
	h := append(c.slot.history, Exchange{User: user, Bot: bot})
	if over := len(h) - c.store.window; over > 0 {
		h = append([]Exchange(nil), h[over:]...)
	}
	c.slot.history = h
}

// Release hands the account to the next waiter. Calling it twice is a no-op.
func (c *Conversation) Release() {
	if c.released {
		return
	}
	c.released = true
	<-c.slot.turn
}
