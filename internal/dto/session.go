package dto

// SelectAnswerRequest carries the raw answer for the current question. The
// payload shape depends on the question type: an option index, a boolean, a
// string, a number, or an item-to-target mapping.
type SelectAnswerRequest struct {
	Answer any `json:"answer"`
}

// UnlockResultsRequest is the email-capture form submission.
type UnlockResultsRequest struct {
	Email     string `json:"email"`
	Subscribe bool   `json:"subscribe"`
}

// ShareRequest reports a social share of the results.
type ShareRequest struct {
	Platform string `json:"platform"`
}

// SliderView is the slider question configuration shown to the player.
type SliderView struct {
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	Unit         string    `json:"unit"`
	Step         float64   `json:"step,omitempty"`
	PresetOnly   bool      `json:"preset_only,omitempty"`
	PresetValues []float64 `json:"preset_values,omitempty"`
}

// DragDropItemView is a draggable item or drop target.
type DragDropItemView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionView is a question as rendered to the player. It never carries
// the correct answer while the quiz is in progress.
type QuestionView struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Category string             `json:"category"`
	Question string             `json:"question"`
	Image    string             `json:"image,omitempty"`
	Answers  []string           `json:"answers,omitempty"`
	Slider   *SliderView        `json:"slider,omitempty"`
	Items    []DragDropItemView `json:"items,omitempty"`
	Targets  []DragDropItemView `json:"targets,omitempty"`
}

// SessionStateResponse is the session as the rendering shell consumes it.
type SessionStateResponse struct {
	SessionID      string        `json:"session_id"`
	State          string        `json:"state"`
	CurrentIndex   int           `json:"current_index"`
	TotalQuestions int           `json:"total_questions"`
	Score          int           `json:"score"`
	Streak         int           `json:"streak"`
	MaxStreak      int           `json:"max_streak"`
	PendingAnswer  any           `json:"pending_answer,omitempty"`
	Question       *QuestionView `json:"question,omitempty"`
}

// AdvanceResponse is the outcome of answering one question.
type AdvanceResponse struct {
	IsCorrect      bool          `json:"is_correct"`
	UserAnswer     any           `json:"user_answer,omitempty"`
	CorrectAnswer  any           `json:"correct_answer,omitempty"`
	Explanation    string        `json:"explanation,omitempty"`
	Score          int           `json:"score"`
	Streak         int           `json:"streak"`
	State          string        `json:"state"`
	CurrentIndex   int           `json:"current_index"`
	TotalQuestions int           `json:"total_questions"`
	Completed      bool          `json:"completed"`
	NextQuestion   *QuestionView `json:"next_question,omitempty"`
}

// TierView is the named score band shown on the results page.
type TierView struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// AchievementView is one earned badge.
type AchievementView struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// AnswerView is one row of the per-question results breakdown.
type AnswerView struct {
	QuestionIndex int    `json:"question_index"`
	Question      string `json:"question"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	UserAnswer    any    `json:"user_answer,omitempty"`
	CorrectAnswer any    `json:"correct_answer,omitempty"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// ResultsResponse is the unlocked results summary.
type ResultsResponse struct {
	SessionID      string            `json:"session_id"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	Accuracy       int               `json:"accuracy"`
	MaxStreak      int               `json:"max_streak"`
	Tier           TierView          `json:"tier"`
	Achievements   []AchievementView `json:"achievements"`
	Breakdown      []AnswerView      `json:"breakdown"`
	ShareToken     string            `json:"share_token,omitempty"`
	ShareURL       string            `json:"share_url,omitempty"`
}

// ShareResponse acknowledges a social share.
type ShareResponse struct {
	Platform string `json:"platform"`
	ShareURL string `json:"share_url,omitempty"`
}

// SharedSummaryResponse is the stateless summary behind a share link.
type SharedSummaryResponse struct {
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Accuracy       int      `json:"accuracy"`
	Tier           TierView `json:"tier"`
}
