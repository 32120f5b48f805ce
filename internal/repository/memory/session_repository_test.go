package memory

import (
	"context"
	"testing"
	"time"

	"jabRental/domain"

	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveLoadDelete(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	snap := domain.SessionSnapshot{
		SessionID: "s1",
		State:     domain.RentalState{Cart: []domain.CartItem{{Quantity: 2}}},
	}
	require.NoError(t, repo.Save(ctx, snap, time.Hour))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 2, got.State.Cart[0].Quantity)

	got.State.Cart[0].Quantity = 7
	again, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 2, again.State.Cart[0].Quantity)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Load(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository()
	now := time.Now()
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.SessionSnapshot{SessionID: "s1"}, time.Minute))

	now = now.Add(30 * time.Second)
	require.NoError(t, repo.Touch(ctx, "s1", time.Minute))

	now = now.Add(45 * time.Second)
	_, err := repo.Load(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = repo.Load(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.ErrorIs(t, repo.Touch(ctx, "s1", time.Minute), domain.ErrSessionNotFound)
}
