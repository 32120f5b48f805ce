package memory

import (
	"context"
	"sync"
	"time"

	"jabRental/domain"
)

type entry struct {
	snapshot  domain.SessionSnapshot
	expiresAt time.Time
}

// SessionRepository keeps session snapshots in process memory. It is used
// when no Redis instance is configured.
type SessionRepository struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *SessionRepository) Save(ctx context.Context, snapshot domain.SessionSnapshot, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot.State = snapshot.State.Clone()
	r.entries[snapshot.SessionID] = entry{snapshot: snapshot, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (domain.SessionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionSnapshot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}
	if r.now().After(e.expiresAt) {
		delete(r.entries, sessionID)
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}

	snapshot := e.snapshot
	snapshot.State = snapshot.State.Clone()
	return snapshot, nil
}

func (r *SessionRepository) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok || r.now().After(e.expiresAt) {
		return domain.ErrSessionNotFound
	}
	e.expiresAt = r.now().Add(ttl)
	r.entries[sessionID] = e
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, sessionID)
	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
