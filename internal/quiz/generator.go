package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"cartridge-quiz/internal/domain"
)

// SequenceGenerator produces the ordered question sequence for one session.
type SequenceGenerator interface {
	Generate() []domain.Question
}

// Generator samples a session sequence from a question pool: a fixed quota
// per difficulty tier, drawn without replacement, then one full shuffle so
// the tiers are interleaved.
type Generator struct {
	pool *domain.PoolDocument
	rng  *rand.Rand
}

// NewGenerator creates a Generator over pool. rng may be nil, in which case
// a time-seeded source is used; tests pass a fixed seed.
func NewGenerator(pool *domain.PoolDocument, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{pool: pool, rng: rng}
}

// Generate implements SequenceGenerator. The source pool is never mutated;
// each selected question is a clone carrying a per-session id of the form
// "{tier}-{drawIndex}" and its difficulty annotation. A tier with fewer
// questions than its quota contributes what it has.
func (g *Generator) Generate() []domain.Question {
	var sequence []domain.Question

	for _, diff := range domain.Difficulties {
		quota := g.pool.Quota(diff)
		available := append([]domain.Question(nil), g.pool.Tier(diff)...)

		for i := 0; i < quota && len(available) > 0; i++ {
			idx := g.rng.Intn(len(available))
			picked := available[idx].Clone()
			available = append(available[:idx], available[idx+1:]...)

			base := picked.Base()
			base.ID = fmt.Sprintf("%s-%d", diff, i)
			base.Difficulty = diff
			sequence = append(sequence, picked)
		}
	}

	g.rng.Shuffle(len(sequence), func(i, j int) {
		sequence[i], sequence[j] = sequence[j], sequence[i]
	})

	return sequence
}
