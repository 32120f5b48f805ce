package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jabRental/business/rental"
	"jabRental/domain"
	"jabRental/pkg/logger"
	"jabRental/pkg/metrics"
	"jabRental/pkg/utils"

	"github.com/google/uuid"
)

// SessionRepository contract interface
type SessionRepository interface {
	Save(ctx context.Context, snapshot domain.SessionSnapshot, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (domain.SessionSnapshot, error)
	Touch(ctx context.Context, sessionID string, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

// StoreFactory builds an empty store for a new or reloaded session.
type StoreFactory func() *rental.Store

type liveSession struct {
	store       *rental.Store
	lastSeen    time.Time
	lastTouched time.Time
}

// touchInterval bounds how often read-only access extends a session's TTL.
const touchInterval = time.Minute

// Manager owns the live store of every visitor session. Stores are cached
// in memory and persisted to the repository after each mutation so a
// session survives restarts and cache eviction.
type Manager struct {
	mu       sync.Mutex
	live     map[string]*liveSession
	repo     SessionRepository
	newStore StoreFactory
	secret   string
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(repo SessionRepository, newStore StoreFactory, secret string, ttl time.Duration) *Manager {
	return &Manager{
		live:     make(map[string]*liveSession),
		repo:     repo,
		newStore: newStore,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *Manager) Open(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("context error: %w", err)
	}

	id := uuid.NewString()
	token, expiresAt, err := utils.GenerateSessionToken(m.secret, id, m.ttl)
	if err != nil {
		logger.Error("Failed to issue session token", err)
		return domain.Session{}, err
	}

	store := m.newStore()
	if err := m.repo.Save(ctx, m.snapshot(id, store), m.ttl); err != nil {
		logger.Error("Failed to persist new session", err)
		return domain.Session{}, err
	}

	m.cache(id, store)
	logger.Debug("session opened", "session_id", id)

	return domain.Session{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a session token to its session id.
func (m *Manager) Authenticate(token string) (string, error) {
	claims, err := utils.ParseSessionToken(m.secret, token)
	if err != nil {
		return "", err
	}

	return claims.SessionID, nil
}

// Get returns the live store of a session, reloading its persisted
// snapshot when it is not cached.
func (m *Manager) Get(ctx context.Context, sessionID string) (*rental.Store, error) {
	m.mu.Lock()
	if ls, ok := m.live[sessionID]; ok {
		now := m.now()
		ls.lastSeen = now
		touch := now.Sub(ls.lastTouched) > touchInterval
		if touch {
			ls.lastTouched = now
		}
		m.mu.Unlock()

		if touch {
			if err := m.repo.Touch(ctx, sessionID, m.ttl); err != nil {
				logger.Warn("Failed to extend session ttl", err, "session_id", sessionID)
			}
		}
		return ls.store, nil
	}
	m.mu.Unlock()

	snapshot, err := m.repo.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			logger.Error("Failed to load session", err, "session_id", sessionID)
		}
		return nil, err
	}

	store := m.newStore()
	store.Restore(snapshot.State)

	return m.cache(sessionID, store), nil
}

// Save persists the session's current state and extends its lifetime.
func (m *Manager) Save(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	ls, ok := m.live[sessionID]
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	if err := m.repo.Save(ctx, m.snapshot(sessionID, ls.store), m.ttl); err != nil {
		logger.Error("Failed to persist session", err, "session_id", sessionID)
		return err
	}

	m.mu.Lock()
	ls.lastTouched = m.now()
	m.mu.Unlock()

	return nil
}

func (m *Manager) Close(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.live, sessionID)
	metrics.ActiveSessions.Set(float64(len(m.live)))
	m.mu.Unlock()

	return m.repo.Delete(ctx, sessionID)
}

// Sweep evicts cached stores idle for longer than idle. Evicted sessions
// stay in the repository and are reloaded on their next request.
func (m *Manager) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-idle)
	evicted := 0
	for id, ls := range m.live {
		if ls.lastSeen.Before(cutoff) {
			delete(m.live, id)
			evicted++
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.live)))

	return evicted
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(idle); n > 0 {
				logger.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

func (m *Manager) cache(sessionID string, store *rental.Store) *rental.Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ls, ok := m.live[sessionID]; ok {
		ls.lastSeen = m.now()
		return ls.store
	}

	now := m.now()
	m.live[sessionID] = &liveSession{store: store, lastSeen: now, lastTouched: now}
	metrics.ActiveSessions.Set(float64(len(m.live)))
	return store
}

func (m *Manager) snapshot(sessionID string, store *rental.Store) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		SessionID: sessionID,
		State:     store.State(),
		SavedAt:   m.now().UTC(),
	}
}
