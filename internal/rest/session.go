package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"jabRental/business/rental"
	"jabRental/domain"
	"jabRental/internal/middleware"
	"jabRental/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type SessionManager interface {
	Open(ctx context.Context) (domain.Session, error)
	Get(ctx context.Context, sessionID string) (*rental.Store, error)
	Save(ctx context.Context, sessionID string) error
	Close(ctx context.Context, sessionID string) error
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type SessionHandler struct {
	sessions SessionManager
	timeout  time.Duration
}

func NewSessionHandler(sessions SessionManager) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		timeout:  10 * time.Second,
	}
}

func (h *SessionHandler) Open(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.sessions.Open(ctx)
	if err != nil {
		logger.Error("Failed to open session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to open session"})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(session))
}

func (h *SessionHandler) Close(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing session"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sessions.Close(ctx, sessionID); err != nil {
		logger.Error("Failed to close session", err, "session_id", sessionID)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to close session"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Session closed"))
}

// loadStore resolves the caller's store. A session that expired or was
// closed since its token was issued is reported as unauthorized. When ok is
// false the error response has already been written.
func loadStore(ctx context.Context, c echo.Context, sessions SessionManager) (store *rental.Store, sessionID string, ok bool) {
	sessionID, ok = middleware.SessionID(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing session"})
		return nil, "", false
	}

	store, err := sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			_ = c.JSON(http.StatusUnauthorized, ResponseError{Message: "session expired"})
			return nil, "", false
		}
		logger.Error("Failed to load session", err, "session_id", sessionID)
		_ = c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to load session"})
		return nil, "", false
	}

	return store, sessionID, true
}

// persist saves the session after a mutation. The live store already holds
// the change, so a failed save is logged and not reported to the caller.
func persist(ctx context.Context, sessions SessionManager, sessionID string) {
	if err := sessions.Save(ctx, sessionID); err != nil {
		logger.Warn("Failed to persist session", err, "session_id", sessionID)
	}
}
