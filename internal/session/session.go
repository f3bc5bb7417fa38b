// Package session persists the authenticated identity (token plus user
// profile, always set and cleared together) and exposes it as an observable
// stream so controllers react to logins and logouts from anywhere in the app.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"

	appErrors "github.com/smarteval/smarteval-go/pkg/errors"
)

// Session is the pair representing a logged-in identity. The zero value is
// logged out.
type Session struct {
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// Authenticated is true iff both token and user are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Backend is the durable storage behind the store. Load must fail open: a
// missing or unreadable session comes back as the zero Session, not an
// error.
type Backend interface {
	Load(ctx context.Context) (Session, error)
	Store(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

const subscriberBuffer = 8

// Store holds the current session in memory, writes through to a backend,
// and broadcasts every change to subscribers.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu      sync.Mutex
	current Session
	subs    map[int]chan Session
	nextSub int
}

// Open reads the persisted session and returns a ready store. A backend
// read failure degrades to the logged-out state.
func Open(ctx context.Context, backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	current, err := backend.Load(ctx)
	if err != nil {
		logger.Warn("session load failed, starting logged out", zap.Error(err))
		current = Session{}
	}
	return &Store{
		backend: backend,
		logger:  logger,
		current: current,
		subs:    make(map[int]chan Session),
	}
}

// Current returns the session as of now.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	return s.Current().Token
}

// Subscribe returns a channel that delivers the current session immediately
// and then every subsequent change, plus a cancel function. A stalled
// subscriber loses its oldest pending update rather than blocking writers.
func (s *Store) Subscribe() (<-chan Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Session, subscriberBuffer)
	ch <- s.current
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Save persists the token and user together and publishes the change. The
// in-memory session is updated even when persistence fails, so the current
// process stays logged in; the storage error is returned for the caller to
// surface.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	next := Session{Token: token, User: &user}

	s.mu.Lock()
	s.current = next
	s.publishLocked()
	s.mu.Unlock()

	if err := s.backend.Store(ctx, next); err != nil {
		s.logger.Error("session persist failed", zap.Error(err))
		return appErrors.Storage(err)
	}
	return nil
}

// Clear removes the persisted session and publishes the logged-out state.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = Session{}
	s.publishLocked()
	s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		s.logger.Error("session clear failed", zap.Error(err))
		return appErrors.Storage(err)
	}
	return nil
}

func (s *Store) publishLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- s.current:
		default:
			// Drop the oldest pending update, then retry once.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.current:
			default:
			}
		}
	}
}
