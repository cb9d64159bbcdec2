package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-kantin/internal/events"
	"github.com/noah-isme/backend-kantin/internal/menu"
	"github.com/noah-isme/backend-kantin/internal/obs"
)

// ErrNotFound indicates the requested order session could not be located.
var ErrNotFound = errors.New("order not found")

// ErrTooManySessions is returned when the session cap has been reached.
var ErrTooManySessions = errors.New("too many active orders")

type session struct {
	state     *State
	expiresAt time.Time
}

// Service is the registry of in-progress order sessions. Sessions expire
// lazily after TTL of inactivity; every access refreshes the deadline.
type Service struct {
	Menu        *menu.Menu
	TaxBps      int
	TTL         time.Duration
	MaxSessions int
	Now         func() time.Time
	Events      *events.Bus

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ttl() time.Duration {
	if s == nil || s.TTL <= 0 {
		return 2 * time.Hour
	}
	return s.TTL
}

// Create opens a new order session with all slots unselected.
func (s *Service) Create(ctx context.Context) (uuid.UUID, Snapshot, error) {
	if s == nil || s.Menu == nil {
		return uuid.Nil, Snapshot{}, ErrNotConfigured
	}
	state, err := NewState(s.Menu, s.TaxBps)
	if err != nil {
		return uuid.Nil, Snapshot{}, err
	}

	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = make(map[uuid.UUID]*session)
	}
	s.purgeLocked()
	if s.MaxSessions > 0 && len(s.sessions) >= s.MaxSessions {
		s.mu.Unlock()
		return uuid.Nil, Snapshot{}, ErrTooManySessions
	}
	id := uuid.New()
	s.sessions[id] = &session{state: state, expiresAt: s.now().Add(s.ttl())}
	active := len(s.sessions)
	s.mu.Unlock()

	s.setActiveGauge(active)
	s.emit(ctx, events.TopicOrderCreated, id, nil)
	return id, state.Snapshot(), nil
}

// Get returns the state behind an order id and refreshes its TTL.
func (s *Service) Get(id uuid.UUID) (*State, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.expiresAt = s.now().Add(s.ttl())
	return sess.state, nil
}

// Select applies a category selection to the order.
func (s *Service) Select(ctx context.Context, id uuid.UUID, cat menu.Category, name string) (Snapshot, error) {
	state, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := state.Select(cat, name)
	if err != nil {
		if obs.OrderSelectionsTotal != nil {
			obs.OrderSelectionsTotal.WithLabelValues(string(cat), "rejected").Inc()
		}
		return Snapshot{}, err
	}
	if obs.OrderSelectionsTotal != nil {
		obs.OrderSelectionsTotal.WithLabelValues(string(cat), "applied").Inc()
	}
	s.emit(ctx, events.TopicSelectionChanged, id, map[string]any{
		"category": string(cat),
		"name":     name,
		"subtotal": snap.Subtotal,
		"tax":      snap.Tax,
		"total":    snap.Total,
	})
	return snap, nil
}

// Recompute rederives tax and total for the order from its current subtotal.
func (s *Service) Recompute(_ context.Context, id uuid.UUID) (Snapshot, error) {
	state, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return state.RecomputeTaxAndTotal(), nil
}

// Reset returns the order to its initial sub-state.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	state, err := s.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	snap := state.Reset()
	if obs.OrderResetsTotal != nil {
		obs.OrderResetsTotal.Inc()
	}
	s.emit(ctx, events.TopicOrderReset, id, nil)
	return snap, nil
}

// Remove drops the session entirely.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if s == nil {
		return ErrNotConfigured
	}
	s.mu.Lock()
	s.purgeLocked()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	active := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.setActiveGauge(active)
	s.emit(ctx, events.TopicOrderRemoved, id, nil)
	return nil
}

// Len reports the number of live sessions.
func (s *Service) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	return len(s.sessions)
}

func (s *Service) purgeLocked() {
	if len(s.sessions) == 0 {
		return
	}
	now := s.now()
	for id, sess := range s.sessions {
		if sess.expiresAt.Before(now) {
			delete(s.sessions, id)
		}
	}
}

func (s *Service) setActiveGauge(active int) {
	if obs.OrderSessionsActive != nil {
		obs.OrderSessionsActive.Set(float64(active))
	}
}

// Notifier failures never fail the order operation itself.
func (s *Service) emit(ctx context.Context, topic string, id uuid.UUID, payload any) {
	if s.Events == nil {
		return
	}
	_, _ = s.Events.Emit(ctx, topic, id, payload)
}
