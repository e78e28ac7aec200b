package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"InvestGuide/pkg/cache"
)

const keyPrefix = "session:"

// Store keeps sessions in the byte cache layer (memory, Redis or layered),
// serialized as JSON, so idle sessions expire with the configured TTL. The
// store serializes load-modify-save cycles with a single mutex: a session has
// exactly one in-flight round at a time, so contention is not a concern.
type Store struct {
	mu        sync.Mutex
	cache     cache.Service
	ttl       time.Duration
	maxRounds int
}

// NewStore creates a session store on top of the given cache backend.
func NewStore(c cache.Service, ttl time.Duration, maxRounds int) *Store {
	return &Store{cache: c, ttl: ttl, maxRounds: maxRounds}
}

// Create allocates a new session with a fresh UUID and persists it.
func (st *Store) Create(ctx context.Context) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := New(uuid.NewString(), st.maxRounds)
	if err := st.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get loads a session by id. Unknown and expired sessions both return
// ErrNotFound.
func (st *Store) Get(ctx context.Context, id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.load(ctx, id)
}

// Update loads the session, applies fn, and persists the result only when fn
// succeeds. A failing fn leaves the stored session untouched.
func (st *Store) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := st.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (st *Store) load(ctx context.Context, id string) (*Session, error) {
	var raw string
	if err := st.cache.Get(ctx, keyPrefix+id, &raw); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session load: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &s, nil
}

func (st *Store) save(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := st.cache.Set(ctx, keyPrefix+s.ID, string(b), st.ttl); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}
