package cart

import (
	"strings"
	"sync"

	"saunahub/pkg/models"
)

// Store is the single source of truth for one session's visible cart. All
// changes go through pure reducers; subscribers receive a snapshot after
// every change.
type Store struct {
	mu   sync.RWMutex
	cart *models.Cart
	subs map[chan *models.Cart]struct{}
}

func NewStore() *Store {
	return &Store{subs: make(map[chan *models.Cart]struct{})}
}

// Current returns a copy of the visible cart, nil when no cart exists yet.
func (s *Store) Current() *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Apply runs a reducer against the visible cart and publishes the result.
// It returns the pre-mutation snapshot for rollback.
func (s *Store) Apply(reduce func(*models.Cart) *models.Cart) (snapshot *models.Cart) {
	s.mu.Lock()
	snapshot = s.cart.Clone()
	s.cart = reduce(s.cart.Clone())
	next := s.cart.Clone()
	s.mu.Unlock()

	s.publish(next)
	return snapshot
}

// Restore puts a previously taken snapshot back, undoing an optimistic
// change whose remote call failed.
func (s *Store) Restore(snapshot *models.Cart) {
	s.mu.Lock()
	s.cart = snapshot.Clone()
	next := s.cart.Clone()
	s.mu.Unlock()

	s.publish(next)
}

// Subscribe returns a channel of cart snapshots and a cancel func. Slow
// subscribers drop intermediate snapshots instead of blocking mutations.
func (s *Store) Subscribe() (<-chan *models.Cart, func()) {
	ch := make(chan *models.Cart, 8)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) publish(c *models.Cart) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// --- reducers ---

// applyAdd appends a synthesized optimistic line. The line id is temporary
// and replaced by the backend id on reconcile.
func applyAdd(c *models.Cart, line models.CartLine) *models.Cart {
	if c == nil {
		return &models.Cart{Lines: []models.CartLine{line}}
	}
	c.Lines = append(c.Lines, line)
	return c
}

// applyUpdate rewrites one line's quantity. Quantity zero or below means
// the line goes away: the backend treats a zero-quantity line as removed,
// and the visible cart must never show one.
func applyUpdate(c *models.Cart, lineID string, quantity int) *models.Cart {
	if c == nil {
		return nil
	}
	if quantity <= 0 {
		return applyRemove(c, lineID)
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines[i].Quantity = quantity
			break
		}
	}
	return c
}

// applyRemove filters one line out.
func applyRemove(c *models.Cart, lineID string) *models.Cart {
	if c == nil {
		return nil
	}
	lines := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ID != lineID {
			lines = append(lines, l)
		}
	}
	c.Lines = lines
	return c
}

// reconcile replaces the visible cart with the backend's authoritative
// response, discarding any synthesized lines.
func reconcile(_ *models.Cart, server *models.Cart) *models.Cart {
	return server.Clone()
}

// isTempLine reports whether a line id was synthesized locally.
func isTempLine(id string) bool {
	return strings.HasPrefix(id, tempLinePrefix)
}
