package domain

import (
	"context"
	"regexp"
)

// Analytics event names, matching the funnel's existing reporting schema.
const (
	EventQuizStarted      = "quiz_started"
	EventQuestionAnswered = "question_answered"
	EventQuizCompleted    = "quiz_completed"
	EventEmailSubmitted   = "email_submitted"
	EventSocialShare      = "social_share"
	EventQuizRetake       = "quiz_retake"
)

// AnalyticsSink is the port for the analytics collector. Implementations are
// fire-and-forget: the caller never consumes a result and must tolerate
// failures.
type AnalyticsSink interface {
	Track(ctx context.Context, event string, params map[string]any) error
}

// SubscriptionData is the quiz metadata attached to a mailing-list signup.
type SubscriptionData struct {
	Score    int
	Tier     string
	Accuracy int
}

// MailingList is the port for the newsletter subscription service. Failures
// never gate the results-unlock transition.
type MailingList interface {
	Subscribe(ctx context.Context, email string, data SubscriptionData) error
}

// emailPattern accepts local-part@domain-with-dot with no embedded
// whitespace. Deliberately loose; the mailing provider does the real check.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email is a syntactically plausible address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
