package mailing

import (
	"context"

	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/logger"

	"go.uber.org/zap"
)

// NoopList is used when MailChimp is not configured; signups are logged and
// dropped.
type NoopList struct{}

func NewNoopList() *NoopList { return &NoopList{} }

// Subscribe implements domain.MailingList.
func (l *NoopList) Subscribe(_ context.Context, email string, data domain.SubscriptionData) error {
	logger.Get().Debug("Mailing-list signup (noop)",
		zap.String("email", email),
		zap.Int("score", data.Score),
		zap.String("tier", data.Tier),
	)
	return nil
}

var _ domain.MailingList = (*NoopList)(nil)
