// Package cart holds the single source of truth for each visitor's cart.
// The remote backend owns persistence; the store mirrors it per session,
// re-fetching on writes and on login, and clearing on logout or after a
// successful simulated payment.
package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

// Backend is the slice of the marketplace API the store needs. Consumers
// define this interface, not the HTTP client.
type Backend interface {
	GetCart(ctx context.Context, cookie string) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, cookie string, productID int64, quantity int) error
}

// FetchStatus distinguishes an empty cart from a failed fetch so callers
// can render the right thing for each case.
type FetchStatus int

const (
	FetchLoaded FetchStatus = iota
	FetchEmpty
	FetchFailed
)

type FetchResult struct {
	Status FetchStatus
	Items  []domain.CartItem
	Total  float64
	Err    error
}

type Store struct {
	mu      sync.Mutex
	backend Backend
	cache   Cache
	sfg     singleflight.Group // Prevents duplicate concurrent fetches per session
	carts   map[string]*cartState
}

type cartState struct {
	items         []domain.CartItem
	total         float64
	authenticated bool
}

func NewStore(backend Backend, cache Cache) *Store {
	return &Store{
		backend: backend,
		cache:   cache,
		carts:   make(map[string]*cartState),
	}
}

// Fetch replaces the session's local cart with the backend's item list.
// Guests get an immediate local reset with no network call. The result is
// applied only if ctx has not been cancelled, so a caller that went away
// mid-fetch cannot receive a stale state update.
func (s *Store) Fetch(ctx context.Context, sess domain.Session) FetchResult {
	if !sess.Authenticated {
		s.reset(sess.ID)
		return FetchResult{Status: FetchEmpty}
	}

	v, err, _ := s.sfg.Do(sess.ID, func() (interface{}, error) {
		items, errGet := s.cache.Get(ctx, sess.ID)
		if errGet == nil {
			return items, nil
		}
		if !errors.Is(errGet, ErrCacheMiss) {
			log.Printf("cache get error: %v", errGet) // log cache error but continue
		}

		items, errGet = s.backend.GetCart(ctx, sess.Cookie)
		if errGet != nil {
			return nil, errGet
		}
		items = domain.MergeDuplicates(items)

		go func() {
			if errSet := s.cache.Set(context.Background(), sess.ID, items); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return items, nil
	})
	if err != nil {
		// Keep whatever state we had; the caller decides how to render.
		return FetchResult{Status: FetchFailed, Err: err}
	}
	if ctx.Err() != nil {
		return FetchResult{Status: FetchFailed, Err: ctx.Err()}
	}

	items := v.([]domain.CartItem)
	total := domain.TotalAmount(items)

	s.mu.Lock()
	state := s.state(sess.ID)
	state.items = items
	state.total = total
	state.authenticated = true
	s.mu.Unlock()

	if len(items) == 0 {
		return FetchResult{Status: FetchEmpty}
	}
	return FetchResult{Status: FetchLoaded, Items: items, Total: total}
}

// Add writes the line to the backend cart, then re-fetches. The re-fetch is
// sequenced after the write completes.
func (s *Store) Add(ctx context.Context, sess domain.Session, productID int64, quantity int) (FetchResult, error) {
	if err := s.backend.AddToCart(ctx, sess.Cookie, productID, quantity); err != nil {
		return FetchResult{}, err
	}

	s.invalidateCache(sess.ID)
	return s.Fetch(ctx, sess), nil
}

// Clear resets local state without contacting the backend. Used after a
// simulated payment success and on logout. The authentication flag is left
// alone so clearing does not look like a login edge on the next sync.
func (s *Store) Clear(sess domain.Session) {
	s.reset(sess.ID)
	s.invalidateCache(sess.ID)
}

// SyncAuth applies an authentication state observed for the session. The
// false→true edge triggers exactly one fetch, the true→false edge exactly
// one clear; repeats of the same state do nothing. Guest sessions never
// materialize store state: every cookie-less request carries a fresh
// session id, so keeping an entry per guest would grow without bound. The
// logout edge drops the entry entirely for the same reason.
func (s *Store) SyncAuth(ctx context.Context, sess domain.Session) *FetchResult {
	s.mu.Lock()
	state, ok := s.carts[sess.ID]

	if !sess.Authenticated {
		if !ok || !state.authenticated {
			s.mu.Unlock()
			return nil
		}
		delete(s.carts, sess.ID)
		s.mu.Unlock()
		s.invalidateCache(sess.ID)
		return nil
	}

	wasAuthenticated := ok && state.authenticated
	if !ok {
		state = &cartState{}
		s.carts[sess.ID] = state
	}
	state.authenticated = true
	s.mu.Unlock()

	if !wasAuthenticated {
		result := s.Fetch(ctx, sess)
		return &result
	}
	return nil
}

// Items returns the current local view of the session's cart.
func (s *Store) Items(sessionID string) ([]domain.CartItem, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.carts[sessionID]
	if !ok {
		return nil, 0
	}
	items := make([]domain.CartItem, len(state.items))
	copy(items, state.items)
	return items, state.total
}

// state returns the session's cart state, creating it if needed.
// Caller must hold s.mu.
func (s *Store) state(sessionID string) *cartState {
	state, ok := s.carts[sessionID]
	if !ok {
		state = &cartState{}
		s.carts[sessionID] = state
	}
	return state
}

// reset empties an existing entry without creating one, so guest traffic
// leaves no trace in the map.
func (s *Store) reset(sessionID string) {
	s.mu.Lock()
	if state, ok := s.carts[sessionID]; ok {
		state.items = nil
		state.total = 0
	}
	s.mu.Unlock()
}

func (s *Store) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
