package repository

import (
	"context"
	"testing"

	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	t.Run("get unknown id", func(t *testing.T) {
		_, err := repo.Get(ctx, "01HNOPE")
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrSessionNotFound, domainErr.Code)
	})

	t.Run("save then get", func(t *testing.T) {
		session := quiz.NewSession("01HTEST")
		require.NoError(t, repo.Save(ctx, session))

		got, err := repo.Get(ctx, "01HTEST")
		require.NoError(t, err)
		assert.Same(t, session, got)
	})

	t.Run("save overwrites", func(t *testing.T) {
		replacement := quiz.NewSession("01HTEST")
		require.NoError(t, repo.Save(ctx, replacement))

		got, err := repo.Get(ctx, "01HTEST")
		require.NoError(t, err)
		assert.Same(t, replacement, got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "01HTEST"))
		_, err := repo.Get(ctx, "01HTEST")
		assert.Error(t, err)

		// Deleting again is a no-op.
		assert.NoError(t, repo.Delete(ctx, "01HTEST"))
	})
}
