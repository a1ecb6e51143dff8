package memory

import (
	"context"
	"strings"
	"testing"

	"go-onboarding-wizard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedium(t *testing.T) {
	ctx := context.Background()

	t.Run("set, get and delete", func(t *testing.T) {
		m := NewMedium(0)
		require.NoError(t, m.Set(ctx, "form_data_a", "v1"))

		v, found, err := m.Get(ctx, "form_data_a")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v1", v)

		require.NoError(t, m.Delete(ctx, "form_data_a"))
		require.NoError(t, m.Delete(ctx, "form_data_a"))
		_, found, err = m.Get(ctx, "form_data_a")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, m.Used())
	})

	t.Run("rejects writes over quota", func(t *testing.T) {
		m := NewMedium(20)
		require.NoError(t, m.Set(ctx, "k", strings.Repeat("x", 10)))
		err := m.Set(ctx, "k2", strings.Repeat("x", 10))
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

		// Overwriting counts only the delta
		require.NoError(t, m.Set(ctx, "k", strings.Repeat("y", 19)))
		assert.Equal(t, int64(20), m.Used())
	})

	t.Run("keys filters by prefix in order", func(t *testing.T) {
		m := NewMedium(0)
		require.NoError(t, m.Set(ctx, "form_data_b", "1"))
		require.NoError(t, m.Set(ctx, "other", "1"))
		require.NoError(t, m.Set(ctx, "form_data_a", "1"))

		keys, err := m.Keys(ctx, "form_data_")
		require.NoError(t, err)
		assert.Equal(t, []string{"form_data_a", "form_data_b"}, keys)
	})

	t.Run("unavailable medium errors", func(t *testing.T) {
		m := NewMedium(0)
		m.SetAvailable(false)
		assert.False(t, m.Available(ctx))
		assert.ErrorIs(t, m.Set(ctx, "k", "v"), domain.ErrMediumUnavailable)
		_, _, err := m.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrMediumUnavailable)
	})
}

func TestBlobStore(t *testing.T) {
	ctx := context.Background()
	s := NewBlobStore()

	blob, err := s.Load(ctx, domain.ProfilePictureKey)
	require.NoError(t, err)
	assert.Nil(t, blob)

	data := []byte{1, 2, 3}
	require.NoError(t, s.Save(ctx, domain.ProfilePictureKey, domain.Blob{Data: data, ContentType: "image/png"}))
	data[0] = 9

	blob, err = s.Load(ctx, domain.ProfilePictureKey)
	require.NoError(t, err)
	require.NotNil(t, blob)
	assert.Equal(t, []byte{1, 2, 3}, blob.Data)
	assert.Equal(t, 3, blob.Size)

	require.NoError(t, s.Remove(ctx, domain.ProfilePictureKey))
	require.NoError(t, s.Remove(ctx, domain.ProfilePictureKey))
	blob, err = s.Load(ctx, domain.ProfilePictureKey)
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory()

	t.Run("every department has managers and at least three skills", func(t *testing.T) {
		for _, dept := range domain.ValidDepartments() {
			managers, err := dir.Managers(ctx, dept)
			require.NoError(t, err)
			assert.NotEmpty(t, managers, dept)
			for _, m := range managers {
				assert.Equal(t, dept, m.Department)
			}

			skills, err := dir.SkillCatalog(ctx, dept)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(skills), 3, dept)
		}
	})

	t.Run("unknown department", func(t *testing.T) {
		_, err := dir.Managers(ctx, "Legal")
		assert.ErrorIs(t, err, domain.ErrUnknownDepartment)
		_, err = dir.SkillCatalog(ctx, "")
		assert.ErrorIs(t, err, domain.ErrUnknownDepartment)
	})
}
