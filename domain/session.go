package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the handle returned to a visitor when their store is opened.
type Session struct {
	ID        string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionSnapshot is the persisted form of a visitor's store.
type SessionSnapshot struct {
	SessionID string      `json:"session_id"`
	State     RentalState `json:"state"`
	SavedAt   time.Time   `json:"saved_at"`
}
