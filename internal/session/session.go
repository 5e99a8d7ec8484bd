// Package session holds per-terminal POS state: one cart, one table
// selection, one notification feed and one submission coordinator.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/cart"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/notify"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"
	"github.com/Axalon174/coffee-shop-manager/internal/services"
	"github.com/Axalon174/coffee-shop-manager/internal/tables"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID          string
	Cart        *cart.Cart
	Tables      *tables.Registry
	Feed        *notify.Feed
	Coordinator *services.OrderCoordinator
	CreatedAt   time.Time

	lastSeen atomic.Int64
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	tables   repository.TableRepository
	deps     services.CoordinatorDeps
	log      *logger.Logger
	feedSize int
	now      func() time.Time
}

// NewManager builds sessions whose table registries read through tables and
// whose coordinators share deps.
func NewManager(tables repository.TableRepository, deps services.CoordinatorDeps) *Manager {
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
		deps.Logger = log
	}
	return &Manager{
		sessions: make(map[string]*Session),
		tables:   tables,
		deps:     deps,
		log:      log,
		now:      time.Now,
	}
}

func (m *Manager) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()

	registry := tables.NewRegistry(m.tables)
	if err := registry.Load(ctx); err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	feed := notify.NewFeed(m.feedSize)
	sinks := []notify.Sink{feed, notify.NewLogSink(m.log, id)}
	if m.deps.Publisher != nil {
		sinks = append(sinks, notify.NewBrokerSink(m.deps.Publisher, m.log, id))
	}

	c := cart.New()
	s := &Session{
		ID:          id,
		Cart:        c,
		Tables:      registry,
		Feed:        feed,
		Coordinator: services.NewOrderCoordinator(m.deps, c, registry, notify.Fanout(sinks...)),
		CreatedAt:   m.now(),
	}
	s.touch(s.CreatedAt)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.log.Info("session_created", "session opened", "session_id", id, "tables", len(registry.Tables()))
	return s, nil
}

// Get returns the session and marks it as seen.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.log.Info("session_closed", "session closed", "session_id", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than idle. Sessions with a
// submission in flight are kept.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.LastSeen().After(cutoff) || s.Coordinator.InFlight() {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	if removed > 0 {
		m.log.Info("session_sweep", "idle sessions removed", "removed", removed, "remaining", len(m.sessions))
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(idle)
		}
	}
}
