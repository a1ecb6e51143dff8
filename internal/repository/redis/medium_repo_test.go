package redis

import (
	"context"
	"testing"

	"go-onboarding-wizard/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMedium(t *testing.T) (*miniredis.Miniredis, domain.StorageMedium) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, NewMediumRepository(client)
}

func TestMediumRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a value", func(t *testing.T) {
		_, m := setupMedium(t)
		assert.True(t, m.Available(ctx))

		require.NoError(t, m.Set(ctx, "form_data_x", `{"version":"1.0"}`))
		v, found, err := m.Get(ctx, "form_data_x")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"version":"1.0"}`, v)
	})

	t.Run("missing key is not found without error", func(t *testing.T) {
		_, m := setupMedium(t)
		_, found, err := m.Get(ctx, "form_data_missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		_, m := setupMedium(t)
		require.NoError(t, m.Set(ctx, "k", "v"))
		require.NoError(t, m.Delete(ctx, "k"))
		require.NoError(t, m.Delete(ctx, "k"))
	})

	t.Run("keys are filtered by prefix", func(t *testing.T) {
		srv, m := setupMedium(t)
		require.NoError(t, srv.Set("form_data_b", "1"))
		require.NoError(t, srv.Set("form_data_a", "1"))
		require.NoError(t, srv.Set("session", "1"))

		keys, err := m.Keys(ctx, "form_data_")
		require.NoError(t, err)
		assert.Equal(t, []string{"form_data_a", "form_data_b"}, keys)
	})

	t.Run("OOM reply maps to quota exceeded", func(t *testing.T) {
		srv, m := setupMedium(t)
		// Warm the pooled connection before injecting the error
		require.NoError(t, m.Set(ctx, "warm", "v"))
		srv.SetError("OOM command not allowed when used memory > 'maxmemory'")
		err := m.Set(ctx, "k", "v")
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	})

	t.Run("nil client is unavailable", func(t *testing.T) {
		m := NewMediumRepository(nil)
		assert.False(t, m.Available(ctx))
		assert.ErrorIs(t, m.Set(ctx, "k", "v"), domain.ErrMediumUnavailable)
	})
}
