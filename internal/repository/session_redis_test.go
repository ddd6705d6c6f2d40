package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cartridge-quiz/internal/cache"
	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/quiz"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGenerator struct{}

func (fixedGenerator) Generate() []domain.Question {
	return []domain.Question{
		&domain.TrueFalseQuestion{
			BaseQuestion: domain.BaseQuestion{
				ID:       "easy-0",
				Type:     domain.TypeTrueFalse,
				Category: "Basics",
				Question: "Rimfire?",
			},
			Correct: true,
		},
	}
}

func startedSession(t *testing.T) *quiz.Session {
	t.Helper()
	session := quiz.NewSession("01HTEST")
	session.Start(fixedGenerator{})
	require.NoError(t, session.SelectAnswer(true))
	_, err := session.Advance()
	require.NoError(t, err)
	return session
}

func TestRedisSessionRepository_Get(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)
	payload, err := json.Marshal(session)
	require.NoError(t, err)

	t.Run("hit", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		repo := NewRedisSessionRepository(db, time.Hour)

		mock.ExpectGet(cache.SessionKey("01HTEST")).SetVal(string(payload))

		got, err := repo.Get(ctx, "01HTEST")
		require.NoError(t, err)
		assert.Equal(t, session.ID(), got.ID())
		assert.Equal(t, session.State(), got.State())
		assert.Equal(t, session.Score(), got.Score())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss maps to session not found", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		repo := NewRedisSessionRepository(db, time.Hour)

		mock.ExpectGet(cache.SessionKey("01HNOPE")).RedisNil()

		_, err := repo.Get(ctx, "01HNOPE")
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrSessionNotFound, domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("backend error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		repo := NewRedisSessionRepository(db, time.Hour)

		mock.ExpectGet(cache.SessionKey("01HTEST")).SetErr(errors.New("connection refused"))

		_, err := repo.Get(ctx, "01HTEST")
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrInternal, domainErr.Code)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		repo := NewRedisSessionRepository(db, time.Hour)

		mock.ExpectGet(cache.SessionKey("01HTEST")).SetVal("not json")

		_, err := repo.Get(ctx, "01HTEST")
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrInternal, domainErr.Code)
	})
}

func TestRedisSessionRepository_Save(t *testing.T) {
	ctx := context.Background()
	session := startedSession(t)
	payload, err := json.Marshal(session)
	require.NoError(t, err)

	t.Run("stores with ttl", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		repo := NewRedisSessionRepository(db, 30*time.Minute)

		mock.ExpectSet(cache.SessionKey("01HTEST"), string(payload), 30*time.Minute).SetVal("OK")

		require.NoError(t, repo.Save(ctx, session))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("backend error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		repo := NewRedisSessionRepository(db, 30*time.Minute)

		mock.ExpectSet(cache.SessionKey("01HTEST"), string(payload), 30*time.Minute).
			SetErr(errors.New("connection refused"))

		err := repo.Save(ctx, session)
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrInternal, domainErr.Code)
	})
}

func TestRedisSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock := redismock.NewClientMock()
	repo := NewRedisSessionRepository(db, time.Hour)

	mock.ExpectDel(cache.SessionKey("01HTEST")).SetVal(1)

	require.NoError(t, repo.Delete(ctx, "01HTEST"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
