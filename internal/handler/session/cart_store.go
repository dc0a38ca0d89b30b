package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"licoreria-api/internal/domain/cart"
)

// CartStore keeps per-session carts in process memory. Carts are scratch
// state for the storefront; losing them on restart is acceptable and the
// order ledger never depends on them.
type CartStore struct {
	mu      sync.Mutex
	carts   map[string]*entry
	ttl     time.Duration
	nowFunc func() time.Time
}

type entry struct {
	cart     *cart.Cart
	lastSeen time.Time
}

const defaultTTL = 2 * time.Hour

func NewCartStore() *CartStore {
	return &CartStore{
		carts:   make(map[string]*entry),
		ttl:     defaultTTL,
		nowFunc: time.Now,
	}
}

// Fetch returns the cart for sessionID, creating both the session and the
// cart when either is missing. The returned sessionID is what the caller
// should set as the cookie value.
func (s *CartStore) Fetch(sessionID string) (string, *cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	s.evictStale(now)

	if sessionID != "" {
		if e, ok := s.carts[sessionID]; ok {
			e.lastSeen = now
			return sessionID, e.cart
		}
	}

	sessionID = newSessionID()
	c := cart.New()
	s.carts[sessionID] = &entry{cart: c, lastSeen: now}
	return sessionID, c
}

// Drop discards a session's cart, typically after checkout.
func (s *CartStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *CartStore) evictStale(now time.Time) {
	for id, e := range s.carts {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.carts, id)
		}
	}
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for session issuance
		panic(err)
	}
	return hex.EncodeToString(b)
}
