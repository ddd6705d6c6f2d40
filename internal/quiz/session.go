package quiz

import (
	"encoding/json"
	"fmt"
	"math"

	"cartridge-quiz/internal/domain"
)

// State is the funnel section a session is in.
type State string

const (
	// StateNotStarted is the landing page: no sequence generated yet.
	StateNotStarted State = "not_started"
	// StateInProgress means questions are being answered.
	StateInProgress State = "in_progress"
	// StateAwaitingEmail means all questions are answered but results are
	// gated behind the email capture.
	StateAwaitingEmail State = "awaiting_email"
	// StateResultsVisible means the gate was satisfied and results show.
	StateResultsVisible State = "results_visible"
)

// AnswerRecord is one entry of the append-only per-question outcome log.
type AnswerRecord struct {
	Question      domain.Question
	UserAnswer    any
	Normalized    any
	IsCorrect     bool
	QuestionIndex int
}

// Session is the quiz state machine for one play-through. It owns question
// progression, score and streak bookkeeping, the outcome log, and the
// email-gated results reveal. A session is single-player and is driven
// synchronously; it is not safe for concurrent use.
type Session struct {
	id              string
	state           State
	questions       []domain.Question
	currentIndex    int
	pendingAnswer   any
	score           int
	streak          int
	maxStreak       int
	answers         []AnswerRecord
	resultsUnlocked bool
	email           string
}

// NewSession creates a session on the landing section.
func NewSession(id string) *Session {
	return &Session{id: id, state: StateNotStarted}
}

func (s *Session) ID() string { return s.id }
func (s *Session) State() State { return s.state }
func (s *Session) Score() int { return s.score }
func (s *Session) Streak() int { return s.streak }
func (s *Session) MaxStreak() int { return s.maxStreak }
func (s *Session) Email() string { return s.email }

func (s *Session) CurrentIndex() int { return s.currentIndex }
func (s *Session) TotalQuestions() int { return len(s.questions) }

// PendingAnswer returns the stored-but-not-yet-evaluated answer; nil means
// no selection.
func (s *Session) PendingAnswer() any { return s.pendingAnswer }

// ResultsUnlocked reports whether the email gate has been satisfied.
func (s *Session) ResultsUnlocked() bool { return s.resultsUnlocked }

// Questions returns the session sequence. The slice is shared; callers must
// not mutate it.
func (s *Session) Questions() []domain.Question { return s.questions }

// Answers returns a copy of the outcome log in play order.
func (s *Session) Answers() []AnswerRecord {
	return append([]AnswerRecord(nil), s.answers...)
}

// CurrentQuestion returns the question awaiting an answer, or false when the
// session is not in progress.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	if s.state != StateInProgress || s.currentIndex >= len(s.questions) {
		return nil, false
	}
	return s.questions[s.currentIndex], true
}

// Completed reports whether every question has been answered.
func (s *Session) Completed() bool {
	return s.state == StateAwaitingEmail || s.state == StateResultsVisible
}

// Start generates a fresh question sequence and enters the quiz. Calling
// Start on a session that already ran discards the prior sequence; there is
// no "already started" error, it simply behaves as a fresh session. An empty
// pool degrades to an immediately-complete quiz rather than failing.
func (s *Session) Start(gen SequenceGenerator) {
	s.reset()
	s.questions = gen.Generate()
	if len(s.questions) == 0 {
		s.state = StateAwaitingEmail
		return
	}
	s.state = StateInProgress
}

// SelectAnswer stores raw as the pending answer for the current question,
// overwriting any previous selection. No evaluation happens yet. Any value
// is accepted, including nil for "no selection".
func (s *Session) SelectAnswer(raw any) error {
	if s.state != StateInProgress {
		return domain.NewInvalidTransitionError(fmt.Sprintf("cannot select an answer while %s", s.state))
	}
	s.pendingAnswer = raw
	return nil
}

// Advance evaluates the pending answer against the current question, appends
// the outcome to the log, updates score and streaks, and moves to the next
// question. When the last question is answered the session transitions to
// the email gate. Advancing without a selection is rejected.
func (s *Session) Advance() (*AnswerRecord, error) {
	if s.state != StateInProgress {
		return nil, domain.NewInvalidTransitionError(fmt.Sprintf("cannot advance while %s", s.state))
	}
	if s.pendingAnswer == nil {
		return nil, domain.NewInvalidTransitionError("cannot advance without a selected answer")
	}

	question := s.questions[s.currentIndex]
	isCorrect, normalized := Evaluate(question, s.pendingAnswer)

	record := AnswerRecord{
		Question:      question,
		UserAnswer:    s.pendingAnswer,
		Normalized:    normalized,
		IsCorrect:     isCorrect,
		QuestionIndex: s.currentIndex,
	}
	s.answers = append(s.answers, record)

	if isCorrect {
		s.score++
		s.streak++
		if s.streak > s.maxStreak {
			s.maxStreak = s.streak
		}
	} else {
		s.streak = 0
	}

	s.pendingAnswer = nil
	s.currentIndex++
	if s.currentIndex == len(s.questions) {
		s.state = StateAwaitingEmail
	}

	return &record, nil
}

// UnlockResults satisfies the email gate. A syntactically implausible email
// is rejected without changing state; the caller re-prompts. Whether the
// mailing-list dispatch succeeds is not this machine's concern: once the
// email is recorded the results are visible unconditionally.
func (s *Session) UnlockResults(email string) error {
	if s.state != StateAwaitingEmail {
		return domain.NewInvalidTransitionError(fmt.Sprintf("cannot unlock results while %s", s.state))
	}
	if !domain.ValidEmail(email) {
		return domain.NewInvalidEmailError(email)
	}
	s.email = email
	s.resultsUnlocked = true
	s.state = StateResultsVisible
	return nil
}

// Restart returns the session to the landing section from any state,
// clearing every field to its initial value.
func (s *Session) Restart() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StateNotStarted
	s.questions = nil
	s.currentIndex = 0
	s.pendingAnswer = nil
	s.score = 0
	s.streak = 0
	s.maxStreak = 0
	s.answers = nil
	s.resultsUnlocked = false
	s.email = ""
}

// AccuracyPercent is the rounded percentage of correct answers.
func (s *Session) AccuracyPercent() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.score) / float64(len(s.questions))))
}

// Tier ranks the session by its current score.
func (s *Session) Tier() domain.Tier {
	return domain.GetTier(s.score)
}

// Achievements derives the badge set from the final score and max streak.
func (s *Session) Achievements() []domain.Achievement {
	return domain.GetAchievements(s.score, s.maxStreak, len(s.questions))
}

// sessionJSON is the persistence shape of a Session. Questions are kept as
// raw records so the tagged-union decoder re-dispatches on load.
type sessionJSON struct {
	ID              string            `json:"id"`
	State           State             `json:"state"`
	Questions       []json.RawMessage `json:"questions"`
	CurrentIndex    int               `json:"current_index"`
	PendingAnswer   any               `json:"pending_answer,omitempty"`
	Score           int               `json:"score"`
	Streak          int               `json:"streak"`
	MaxStreak       int               `json:"max_streak"`
	Answers         []answerJSON      `json:"answers,omitempty"`
	ResultsUnlocked bool              `json:"results_unlocked"`
	Email           string            `json:"email,omitempty"`
}

type answerJSON struct {
	Question      json.RawMessage `json:"question"`
	UserAnswer    any             `json:"user_answer"`
	Normalized    any             `json:"normalized,omitempty"`
	IsCorrect     bool            `json:"is_correct"`
	QuestionIndex int             `json:"question_index"`
}

// MarshalJSON implements json.Marshaler so sessions can live in an external
// store between requests.
func (s *Session) MarshalJSON() ([]byte, error) {
	doc := sessionJSON{
		ID:              s.id,
		State:           s.state,
		CurrentIndex:    s.currentIndex,
		PendingAnswer:   s.pendingAnswer,
		Score:           s.score,
		Streak:          s.streak,
		MaxStreak:       s.maxStreak,
		ResultsUnlocked: s.resultsUnlocked,
		Email:           s.email,
	}
	for _, q := range s.questions {
		raw, err := domain.MarshalQuestion(q)
		if err != nil {
			return nil, err
		}
		doc.Questions = append(doc.Questions, raw)
	}
	for _, a := range s.answers {
		raw, err := domain.MarshalQuestion(a.Question)
		if err != nil {
			return nil, err
		}
		doc.Answers = append(doc.Answers, answerJSON{
			Question:      raw,
			UserAnswer:    a.UserAnswer,
			Normalized:    a.Normalized,
			IsCorrect:     a.IsCorrect,
			QuestionIndex: a.QuestionIndex,
		})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Session) UnmarshalJSON(data []byte) error {
	var doc sessionJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	questions := make([]domain.Question, 0, len(doc.Questions))
	for i, raw := range doc.Questions {
		q, err := domain.UnmarshalQuestion(raw)
		if err != nil {
			return fmt.Errorf("session question %d: %w", i, err)
		}
		questions = append(questions, q)
	}

	answers := make([]AnswerRecord, 0, len(doc.Answers))
	for i, a := range doc.Answers {
		q, err := domain.UnmarshalQuestion(a.Question)
		if err != nil {
			return fmt.Errorf("session answer %d: %w", i, err)
		}
		answers = append(answers, AnswerRecord{
			Question:      q,
			UserAnswer:    a.UserAnswer,
			Normalized:    a.Normalized,
			IsCorrect:     a.IsCorrect,
			QuestionIndex: a.QuestionIndex,
		})
	}
	if len(answers) == 0 {
		answers = nil
	}
	if len(questions) == 0 {
		questions = nil
	}

	s.id = doc.ID
	s.state = doc.State
	s.questions = questions
	s.currentIndex = doc.CurrentIndex
	s.pendingAnswer = doc.PendingAnswer
	s.score = doc.Score
	s.streak = doc.Streak
	s.maxStreak = doc.MaxStreak
	s.answers = answers
	s.resultsUnlocked = doc.ResultsUnlocked
	s.email = doc.Email
	return nil
}
