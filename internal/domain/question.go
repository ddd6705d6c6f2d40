package domain

import (
	"encoding/json"
	"fmt"
)

// Difficulty is the question difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the tiers in pool order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// QuestionType discriminates the question variants. The string values are
// part of the question document contract and must not change.
type QuestionType string

const (
	TypeMultipleChoice      QuestionType = "multiple-choice"
	TypeImageMultipleChoice QuestionType = "image-multiple-choice"
	TypeTrueFalse           QuestionType = "true-false"
	TypeTextInput           QuestionType = "text-input"
	TypeSlider              QuestionType = "slider"
	TypeDragDrop            QuestionType = "drag-drop"
)

// Question is the tagged union over all question variants. Exactly one
// concrete variant governs which fields are present and how evaluation
// proceeds; callers switch on the concrete type.
type Question interface {
	// Base returns the fields shared by every variant.
	Base() *BaseQuestion
	// Clone returns a copy whose base fields can be mutated without
	// aliasing the source pool.
	Clone() Question

	isQuestion()
}

// BaseQuestion holds the fields common to every question variant.
type BaseQuestion struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Category    string       `json:"category"`
	Question    string       `json:"question"`
	Explanation string       `json:"explanation,omitempty"`
	Difficulty  Difficulty   `json:"difficulty,omitempty"`
	Image       string       `json:"image,omitempty"`
}

// MultipleChoiceQuestion covers both multiple-choice and
// image-multiple-choice: an ordered answer list and the correct index.
type MultipleChoiceQuestion struct {
	BaseQuestion
	Answers []string `json:"answers"`
	Correct int      `json:"correct"`
}

type TrueFalseQuestion struct {
	BaseQuestion
	Correct bool `json:"correct"`
}

type TextInputQuestion struct {
	BaseQuestion
	Correct           string   `json:"correct"`
	AcceptableAnswers []string `json:"acceptableAnswers"`
}

// SliderQuestion is a numeric guess on a range. When PresetOnly is set the
// slider snaps to PresetValues and correctness requires an exact match;
// otherwise Tolerance applies.
type SliderQuestion struct {
	BaseQuestion
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	Unit         string    `json:"unit"`
	Correct      float64   `json:"correct"`
	Tolerance    float64   `json:"tolerance"`
	Step         float64   `json:"step,omitempty"`
	PresetOnly   bool      `json:"presetOnly,omitempty"`
	PresetValues []float64 `json:"presetValues,omitempty"`
}

// DragDropItem is a draggable item or a drop target.
type DragDropItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type DragDropQuestion struct {
	BaseQuestion
	Items          []DragDropItem    `json:"items"`
	Targets        []DragDropItem    `json:"targets"`
	CorrectMatches map[string]string `json:"correctMatches"`
}

func (q *MultipleChoiceQuestion) Base() *BaseQuestion { return &q.BaseQuestion }
func (q *TrueFalseQuestion) Base() *BaseQuestion      { return &q.BaseQuestion }
func (q *TextInputQuestion) Base() *BaseQuestion      { return &q.BaseQuestion }
func (q *SliderQuestion) Base() *BaseQuestion         { return &q.BaseQuestion }
func (q *DragDropQuestion) Base() *BaseQuestion       { return &q.BaseQuestion }

func (q *MultipleChoiceQuestion) Clone() Question { c := *q; return &c }
func (q *TrueFalseQuestion) Clone() Question      { c := *q; return &c }
func (q *TextInputQuestion) Clone() Question      { c := *q; return &c }
func (q *SliderQuestion) Clone() Question         { c := *q; return &c }
func (q *DragDropQuestion) Clone() Question       { c := *q; return &c }

func (*MultipleChoiceQuestion) isQuestion() {}
func (*TrueFalseQuestion) isQuestion()      {}
func (*TextInputQuestion) isQuestion()      {}
func (*SliderQuestion) isQuestion()         {}
func (*DragDropQuestion) isQuestion()       {}

// UnmarshalQuestion decodes a single question record, dispatching on the
// "type" field. Unknown types are an error rather than a silent fallthrough.
func UnmarshalQuestion(data []byte) (Question, error) {
	var head struct {
		Type QuestionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to read question type: %w", err)
	}

	var q Question
	switch head.Type {
	case TypeMultipleChoice, TypeImageMultipleChoice:
		q = &MultipleChoiceQuestion{}
	case TypeTrueFalse:
		q = &TrueFalseQuestion{}
	case TypeTextInput:
		q = &TextInputQuestion{}
	case TypeSlider:
		q = &SliderQuestion{}
	case TypeDragDrop:
		q = &DragDropQuestion{}
	default:
		return nil, fmt.Errorf("unknown question type: %q", head.Type)
	}

	if err := json.Unmarshal(data, q); err != nil {
		return nil, fmt.Errorf("failed to decode %s question: %w", head.Type, err)
	}
	return q, nil
}

// MarshalQuestion encodes a question record; the concrete variant carries
// its own "type" tag so the output round-trips through UnmarshalQuestion.
func MarshalQuestion(q Question) ([]byte, error) {
	return json.Marshal(q)
}

// QuestionList decodes a JSON array of heterogeneous question records.
type QuestionList []Question

func (l *QuestionList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	qs := make([]Question, 0, len(raws))
	for i, raw := range raws {
		q, err := UnmarshalQuestion(raw)
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		qs = append(qs, q)
	}
	*l = qs
	return nil
}

// PoolSettings is the settings block of the question document.
type PoolSettings struct {
	QuestionsPerDifficulty map[Difficulty]int `json:"questionsPerDifficulty"`
}

// PoolDocument is the question source document: one collection per
// difficulty tier plus the per-tier sampling quotas. Field names are fixed
// for interoperability with existing data files.
type PoolDocument struct {
	Easy     QuestionList `json:"easy"`
	Medium   QuestionList `json:"medium"`
	Hard     QuestionList `json:"hard"`
	Settings PoolSettings `json:"settings"`
}

// Tier returns the pool collection for a difficulty tier.
func (d *PoolDocument) Tier(diff Difficulty) []Question {
	switch diff {
	case DifficultyEasy:
		return d.Easy
	case DifficultyMedium:
		return d.Medium
	case DifficultyHard:
		return d.Hard
	default:
		return nil
	}
}

// Quota returns the sampling quota for a difficulty tier, zero if unset.
func (d *PoolDocument) Quota(diff Difficulty) int {
	if d.Settings.QuestionsPerDifficulty == nil {
		return 0
	}
	return d.Settings.QuestionsPerDifficulty[diff]
}

// TargetLength is the configured session length: the sum of all quotas.
func (d *PoolDocument) TargetLength() int {
	total := 0
	for _, diff := range Difficulties {
		total += d.Quota(diff)
	}
	return total
}
