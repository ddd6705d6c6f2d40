package service

import (
	"context"
	"fmt"
	"time"

	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/dto"
	"cartridge-quiz/internal/logger"
	"cartridge-quiz/internal/quiz"
	"cartridge-quiz/internal/util"

	"go.uber.org/zap"
)

// dispatchTimeout bounds the detached analytics/mailing sends.
const dispatchTimeout = 10 * time.Second

// SessionRepository is the session store consumed by the service.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*quiz.Session, error)
	Save(ctx context.Context, session *quiz.Session) error
	Delete(ctx context.Context, id string) error
}

// SessionService drives quiz sessions through the funnel and dispatches the
// fire-and-forget side effects around them.
type SessionService interface {
	StartSession(ctx context.Context) (*dto.SessionStateResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionStateResponse, error)
	SelectAnswer(ctx context.Context, id string, answer any) (*dto.SessionStateResponse, error)
	Advance(ctx context.Context, id string) (*dto.AdvanceResponse, error)
	UnlockResults(ctx context.Context, id, email string, subscribe bool) (*dto.ResultsResponse, error)
	GetResults(ctx context.Context, id string) (*dto.ResultsResponse, error)
	Restart(ctx context.Context, id string) (*dto.SessionStateResponse, error)
	Share(ctx context.Context, id, platform string) (*dto.ShareResponse, error)
	ResolveShare(token string) (*dto.SharedSummaryResponse, error)
}

// sessionService implements SessionService
type sessionService struct {
	repo      SessionRepository
	generator quiz.SequenceGenerator
	analytics domain.AnalyticsSink
	mailing   domain.MailingList
	tokens    *ShareTokenIssuer
	shareBase string
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	repo SessionRepository,
	generator quiz.SequenceGenerator,
	analytics domain.AnalyticsSink,
	mailing domain.MailingList,
	tokens *ShareTokenIssuer,
	shareBase string,
) SessionService {
	return &sessionService{
		repo:      repo,
		generator: generator,
		analytics: analytics,
		mailing:   mailing,
		tokens:    tokens,
		shareBase: shareBase,
	}
}

// StartSession creates a fresh session, generates its question sequence and
// enters the quiz.
func (s *sessionService) StartSession(ctx context.Context) (*dto.SessionStateResponse, error) {
	session := quiz.NewSession(util.NewULID())
	session.Start(s.generator)

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.track(domain.EventQuizStarted, map[string]any{
		"content_type": "quiz",
		"content_id":   "cartridge_detective_challenge",
	})

	logger.Get().Info("Quiz session started",
		zap.String("session_id", session.ID()),
		zap.Int("total_questions", session.TotalQuestions()),
	)
	return toStateResponse(session), nil
}

// GetSession returns the current session state.
func (s *sessionService) GetSession(ctx context.Context, id string) (*dto.SessionStateResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStateResponse(session), nil
}

// SelectAnswer stores the pending answer for the current question.
func (s *sessionService) SelectAnswer(ctx context.Context, id string, answer any) (*dto.SessionStateResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.SelectAnswer(answer); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return toStateResponse(session), nil
}

// Advance evaluates the pending answer and moves the session forward.
func (s *sessionService) Advance(ctx context.Context, id string) (*dto.AdvanceResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	record, err := session.Advance()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.track(domain.EventQuestionAnswered, map[string]any{
		"question_index":    record.QuestionIndex,
		"is_correct":        record.IsCorrect,
		"question_category": record.Question.Base().Category,
	})

	resp := &dto.AdvanceResponse{
		IsCorrect:      record.IsCorrect,
		UserAnswer:     record.Normalized,
		CorrectAnswer:  correctAnswerView(record.Question),
		Explanation:    record.Question.Base().Explanation,
		Score:          session.Score(),
		Streak:         session.Streak(),
		State:          string(session.State()),
		CurrentIndex:   session.CurrentIndex(),
		TotalQuestions: session.TotalQuestions(),
		Completed:      session.Completed(),
	}
	if next, ok := session.CurrentQuestion(); ok {
		resp.NextQuestion = toQuestionView(next)
	}
	return resp, nil
}

// UnlockResults satisfies the email gate and reveals the results. The
// mailing-list subscription is dispatched detached when the player opted in;
// its outcome never affects the response.
func (s *sessionService) UnlockResults(ctx context.Context, id, email string, subscribe bool) (*dto.ResultsResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.UnlockResults(email); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	tier := session.Tier()
	accuracy := session.AccuracyPercent()

	s.track(domain.EventEmailSubmitted, map[string]any{
		"newsletter_signup": subscribe,
		"lead_generated":    true,
	})
	s.track(domain.EventQuizCompleted, map[string]any{
		"score":             session.Score(),
		"total_questions":   session.TotalQuestions(),
		"accuracy":          accuracy,
		"tier":              tier.Name,
		"newsletter_signup": subscribe,
		"conversion":        true,
	})

	if subscribe {
		s.subscribe(email, domain.SubscriptionData{
			Score:    session.Score(),
			Tier:     tier.Name,
			Accuracy: accuracy,
		})
	}

	return s.buildResults(session)
}

// GetResults returns the results summary once the gate has been satisfied.
func (s *sessionService) GetResults(ctx context.Context, id string) (*dto.ResultsResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State() != quiz.StateResultsVisible {
		return nil, domain.NewInvalidTransitionError("results are locked until a valid email is submitted")
	}
	return s.buildResults(session)
}

// Restart returns the session to the landing section.
func (s *sessionService) Restart(ctx context.Context, id string) (*dto.SessionStateResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Restart()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.track(domain.EventQuizRetake, nil)

	return toStateResponse(session), nil
}

// Share reports a social share and hands back the share link.
func (s *sessionService) Share(ctx context.Context, id, platform string) (*dto.ShareResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State() != quiz.StateResultsVisible {
		return nil, domain.NewInvalidTransitionError("nothing to share before results are visible")
	}

	tier := session.Tier()
	s.track(domain.EventSocialShare, map[string]any{
		"platform": platform,
		"score":    session.Score(),
		"tier":     tier.Name,
	})

	token, err := s.tokens.Issue(session.Score(), session.TotalQuestions(), session.AccuracyPercent(), tier.Name)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue share token", err)
	}
	return &dto.ShareResponse{
		Platform: platform,
		ShareURL: s.shareURL(token),
	}, nil
}

// ResolveShare renders the stateless summary behind a share link.
func (s *sessionService) ResolveShare(token string) (*dto.SharedSummaryResponse, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	tier := domain.GetTier(claims.Score)
	return &dto.SharedSummaryResponse{
		Score:          claims.Score,
		TotalQuestions: claims.Total,
		Accuracy:       claims.Accuracy,
		Tier:           toTierView(tier),
	}, nil
}

func (s *sessionService) buildResults(session *quiz.Session) (*dto.ResultsResponse, error) {
	tier := session.Tier()

	breakdown := make([]dto.AnswerView, 0, len(session.Answers()))
	for _, record := range session.Answers() {
		base := record.Question.Base()
		breakdown = append(breakdown, dto.AnswerView{
			QuestionIndex: record.QuestionIndex,
			Question:      base.Question,
			Category:      base.Category,
			Type:          string(base.Type),
			UserAnswer:    record.Normalized,
			CorrectAnswer: correctAnswerView(record.Question),
			IsCorrect:     record.IsCorrect,
			Explanation:   base.Explanation,
		})
	}

	achievements := make([]dto.AchievementView, 0)
	for _, a := range session.Achievements() {
		achievements = append(achievements, dto.AchievementView{Icon: a.Icon, Text: a.Text})
	}

	token, err := s.tokens.Issue(session.Score(), session.TotalQuestions(), session.AccuracyPercent(), tier.Name)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue share token", err)
	}

	return &dto.ResultsResponse{
		SessionID:      session.ID(),
		Score:          session.Score(),
		TotalQuestions: session.TotalQuestions(),
		Accuracy:       session.AccuracyPercent(),
		MaxStreak:      session.MaxStreak(),
		Tier:           toTierView(tier),
		Achievements:   achievements,
		Breakdown:      breakdown,
		ShareToken:     token,
		ShareURL:       s.shareURL(token),
	}, nil
}

func (s *sessionService) shareURL(token string) string {
	if token == "" || s.shareBase == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/share/%s", s.shareBase, token)
}

// track dispatches an analytics event on a detached goroutine; the transition
// that triggered it completes synchronously and never waits.
func (s *sessionService) track(event string, params map[string]any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := s.analytics.Track(ctx, event, params); err != nil {
			logger.Get().Warn("Analytics dispatch failed",
				zap.String("event", event),
				zap.Error(err),
			)
		}
	}()
}

// subscribe dispatches the mailing-list signup on a detached goroutine.
func (s *sessionService) subscribe(email string, data domain.SubscriptionData) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := s.mailing.Subscribe(ctx, email, data); err != nil {
			logger.Get().Warn("Mailing-list dispatch failed",
				zap.Error(err),
			)
		}
	}()
}

func toStateResponse(session *quiz.Session) *dto.SessionStateResponse {
	resp := &dto.SessionStateResponse{
		SessionID:      session.ID(),
		State:          string(session.State()),
		CurrentIndex:   session.CurrentIndex(),
		TotalQuestions: session.TotalQuestions(),
		Score:          session.Score(),
		Streak:         session.Streak(),
		MaxStreak:      session.MaxStreak(),
		PendingAnswer:  session.PendingAnswer(),
	}
	if q, ok := session.CurrentQuestion(); ok {
		resp.Question = toQuestionView(q)
	}
	return resp
}

// toQuestionView renders a question for the player; answer keys stay on the
// server side.
func toQuestionView(question domain.Question) *dto.QuestionView {
	base := question.Base()
	view := &dto.QuestionView{
		ID:       base.ID,
		Type:     string(base.Type),
		Category: base.Category,
		Question: base.Question,
		Image:    base.Image,
	}

	switch q := question.(type) {
	case *domain.MultipleChoiceQuestion:
		view.Answers = append([]string(nil), q.Answers...)
	case *domain.TrueFalseQuestion:
		// Nothing beyond the prompt.
	case *domain.TextInputQuestion:
		// Nothing beyond the prompt.
	case *domain.SliderQuestion:
		view.Slider = &dto.SliderView{
			Min:          q.Min,
			Max:          q.Max,
			Unit:         q.Unit,
			Step:         q.Step,
			PresetOnly:   q.PresetOnly,
			PresetValues: append([]float64(nil), q.PresetValues...),
		}
	case *domain.DragDropQuestion:
		for _, item := range q.Items {
			view.Items = append(view.Items, dto.DragDropItemView{ID: item.ID, Text: item.Text})
		}
		for _, target := range q.Targets {
			view.Targets = append(view.Targets, dto.DragDropItemView{ID: target.ID, Text: target.Text})
		}
	}
	return view
}

// correctAnswerView renders the correct answer for the post-answer reveal
// and the results breakdown.
func correctAnswerView(question domain.Question) any {
	switch q := question.(type) {
	case *domain.MultipleChoiceQuestion:
		if q.Correct >= 0 && q.Correct < len(q.Answers) {
			return q.Answers[q.Correct]
		}
		return nil
	case *domain.TrueFalseQuestion:
		return q.Correct
	case *domain.TextInputQuestion:
		return q.Correct
	case *domain.SliderQuestion:
		return fmt.Sprintf("%v %s", q.Correct, q.Unit)
	case *domain.DragDropQuestion:
		return q.CorrectMatches
	}
	return nil
}

func toTierView(tier domain.Tier) dto.TierView {
	return dto.TierView{
		Name:        tier.Name,
		Icon:        tier.Icon,
		Description: tier.Description,
	}
}
