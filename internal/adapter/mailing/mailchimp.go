// Package mailing implements the mailing-list port against the MailChimp
// members API. Subscription failures are the caller's to swallow; they never
// gate the results reveal.
package mailing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cartridge-quiz/internal/config"
	"cartridge-quiz/internal/domain"
)

// MailchimpList subscribes addresses to a MailChimp audience, tagging them
// and attaching the quiz outcome as merge fields.
type MailchimpList struct {
	apiKey string
	listID string
	base   string
	client *http.Client
}

// NewMailchimpList creates a subscriber from the MailChimp configuration.
func NewMailchimpList(cfg config.MailchimpConfig) *MailchimpList {
	return &MailchimpList{
		apiKey: cfg.APIKey,
		listID: cfg.ListID,
		base:   fmt.Sprintf("https://%s.api.mailchimp.com", cfg.ServerPrefix),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type memberPayload struct {
	EmailAddress string      `json:"email_address"`
	Status       string      `json:"status"`
	Tags         []string    `json:"tags,omitempty"`
	MergeFields  mergeFields `json:"merge_fields,omitempty"`
}

type mergeFields struct {
	QuizScore int    `json:"QUIZ_SCORE"`
	QuizTier  string `json:"QUIZ_TIER"`
	QuizDate  string `json:"QUIZ_DATE"`
}

// Subscribe implements domain.MailingList.
func (m *MailchimpList) Subscribe(ctx context.Context, email string, data domain.SubscriptionData) error {
	payload, err := json.Marshal(memberPayload{
		EmailAddress: email,
		Status:       "subscribed",
		Tags:         []string{"Cartridge Quiz Contact"},
		MergeFields: mergeFields{
			QuizScore: data.Score,
			QuizTier:  data.Tier,
			QuizDate:  time.Now().UTC().Format("2006-01-02"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode subscriber: %w", err)
	}

	endpoint := fmt.Sprintf("%s/3.0/lists/%s/members", m.base, m.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth("anystring", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailchimp returned status %d: %s", resp.StatusCode, body)
	}
	return nil
}

var _ domain.MailingList = (*MailchimpList)(nil)
