package pool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartridge-quiz/internal/domain"
)

const sampleDocument = `{
	"easy": [{"type":"true-false","category":"Basics","question":"Q1?","correct":true}],
	"medium": [{"type":"text-input","category":"Terminology","question":"Q2?","correct":"moa","acceptableAnswers":["moa"]}],
	"hard": [{"type":"slider","category":"Ballistics","question":"Q3?","min":0,"max":100,"unit":"gr","correct":55,"tolerance":5}],
	"settings": {"questionsPerDifficulty":{"easy":1,"medium":1,"hard":1}}
}`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Len(t, doc.Easy, 1)
	assert.Len(t, doc.Medium, 1)
	assert.Len(t, doc.Hard, 1)
	assert.Equal(t, 3, doc.TargetLength())
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := Parse([]byte(`{"easy": [`))
		assert.Error(t, err)
	})

	t.Run("unknown question type", func(t *testing.T) {
		_, err := Parse([]byte(`{"easy":[{"type":"essay","question":"Q?"}],"settings":{"questionsPerDifficulty":{"easy":1}}}`))
		assert.Error(t, err)
	})

	t.Run("missing quotas", func(t *testing.T) {
		_, err := Parse([]byte(`{"easy":[{"type":"true-false","question":"Q?","correct":true}]}`))
		assert.Error(t, err)
	})
}

func TestLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	doc := NewLoader(path).Load(context.Background())

	require.NotNil(t, doc)
	assert.Equal(t, 3, doc.TargetLength())
	assert.Equal(t, "Q1?", doc.Easy[0].Base().Question)
}

func TestLoader_LoadFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDocument))
	}))
	defer server.Close()

	doc := NewLoader(server.URL).Load(context.Background())

	require.NotNil(t, doc)
	assert.Equal(t, 3, doc.TargetLength())
}

func TestLoader_FallsBackOnFailure(t *testing.T) {
	fallback := Fallback()

	t.Run("missing file", func(t *testing.T) {
		doc := NewLoader(filepath.Join(t.TempDir(), "absent.json")).Load(context.Background())
		assert.Equal(t, fallback.TargetLength(), doc.TargetLength())
	})

	t.Run("empty source", func(t *testing.T) {
		doc := NewLoader("").Load(context.Background())
		assert.Equal(t, fallback.TargetLength(), doc.TargetLength())
	})

	t.Run("broken document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "questions.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

		doc := NewLoader(path).Load(context.Background())
		assert.Equal(t, fallback.TargetLength(), doc.TargetLength())
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		doc := NewLoader(server.URL).Load(context.Background())
		assert.Equal(t, fallback.TargetLength(), doc.TargetLength())
	})
}

// The embedded fallback must always parse and keep the quiz playable on its
// own.
func TestFallback_IsPlayable(t *testing.T) {
	doc := Fallback()

	require.NotNil(t, doc)
	assert.Greater(t, doc.TargetLength(), 0)
	assert.NotEmpty(t, doc.Easy)

	for _, tier := range []struct {
		name      domain.Difficulty
		questions domain.QuestionList
	}{
		{domain.DifficultyEasy, doc.Easy},
		{domain.DifficultyMedium, doc.Medium},
		{domain.DifficultyHard, doc.Hard},
	} {
		quota := doc.Quota(tier.name)
		assert.LessOrEqual(t, quota, len(tier.questions),
			"%s quota exceeds available questions", tier.name)
	}
}
