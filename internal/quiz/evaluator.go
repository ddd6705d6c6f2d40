package quiz

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"cartridge-quiz/internal/domain"
)

// Evaluate decides whether a raw submitted answer is correct for a question,
// and returns the normalized form of the answer for the session log. It is
// pure: no session state is touched and nothing is ever thrown at the
// caller. Every kind of malformed input (wrong dynamic type, out-of-range
// index, non-numeric slider value, nil) resolves to incorrect.
func Evaluate(question domain.Question, raw any) (bool, any) {
	switch q := question.(type) {
	case *domain.MultipleChoiceQuestion:
		idx, ok := toIndex(raw)
		if !ok || idx < 0 || idx >= len(q.Answers) {
			return false, nil
		}
		return idx == q.Correct, q.Answers[idx]

	case *domain.TrueFalseQuestion:
		b, ok := raw.(bool)
		if !ok {
			return false, nil
		}
		return b == q.Correct, b

	case *domain.TextInputQuestion:
		s, ok := raw.(string)
		if !ok {
			return false, nil
		}
		normalized := strings.ToLower(strings.TrimSpace(s))
		if normalized == "" {
			return false, normalized
		}
		for _, acceptable := range q.AcceptableAnswers {
			if normalized == strings.ToLower(strings.TrimSpace(acceptable)) {
				return true, normalized
			}
		}
		return false, normalized

	case *domain.SliderQuestion:
		value, ok := toNumber(raw)
		if !ok {
			return false, nil
		}
		normalized := strings.TrimSpace(strconv.FormatFloat(value, 'f', -1, 64) + " " + q.Unit)
		if q.PresetOnly {
			// Presets are discrete choices; near misses are just wrong.
			return value == q.Correct, normalized
		}
		return math.Abs(value-q.Correct) <= q.Tolerance, normalized

	case *domain.DragDropQuestion:
		matches, ok := toMatches(raw)
		if !ok {
			return false, nil
		}
		// Every expected item must be on its target; extra keys in the
		// submission are ignored, missing keys count as unmatched.
		for itemID, targetID := range q.CorrectMatches {
			if matches[itemID] != targetID {
				return false, matches
			}
		}
		return true, matches
	}

	// Unknown variant: the document decoder rejects these, so this is only
	// reachable with a hand-built question. Treat as incorrect.
	return false, nil
}

// toIndex coerces a submitted multiple-choice index. JSON numbers arrive as
// float64; only integral values qualify.
func toIndex(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

// toNumber coerces a submitted slider value.
func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// toMatches coerces a submitted drag-drop mapping. JSON objects arrive as
// map[string]any; non-string targets are dropped, which leaves the item
// unmatched.
func toMatches(raw any) (map[string]string, bool) {
	switch v := raw.(type) {
	case map[string]string:
		return v, true
	case map[string]any:
		matches := make(map[string]string, len(v))
		for itemID, target := range v {
			if targetID, ok := target.(string); ok {
				matches[itemID] = targetID
			}
		}
		return matches, true
	}
	return nil, false
}
