// Package analytics implements the analytics sink against the GA4
// Measurement Protocol. Dispatch is fire-and-forget from the caller's point
// of view; a failed send is logged and swallowed.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cartridge-quiz/internal/config"
	"cartridge-quiz/internal/domain"
)

// GA4Sink posts events to the Google Analytics 4 Measurement Protocol
// collect endpoint.
type GA4Sink struct {
	endpoint      string
	measurementID string
	apiSecret     string
	clientID      string
	client        *http.Client
}

// NewGA4Sink creates a sink from the analytics configuration. clientID
// identifies this server instance to GA4.
func NewGA4Sink(cfg config.AnalyticsConfig, clientID string) *GA4Sink {
	return &GA4Sink{
		endpoint:      cfg.Endpoint,
		measurementID: cfg.MeasurementID,
		apiSecret:     cfg.APISecret,
		clientID:      clientID,
		client:        &http.Client{Timeout: 5 * time.Second},
	}
}

type ga4Payload struct {
	ClientID string     `json:"client_id"`
	Events   []ga4Event `json:"events"`
}

type ga4Event struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// Track implements domain.AnalyticsSink.
func (s *GA4Sink) Track(ctx context.Context, event string, params map[string]any) error {
	payload, err := json.Marshal(ga4Payload{
		ClientID: s.clientID,
		Events:   []ga4Event{{Name: event, Params: params}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode analytics event: %w", err)
	}

	collectURL := fmt.Sprintf("%s?measurement_id=%s&api_secret=%s",
		s.endpoint,
		url.QueryEscape(s.measurementID),
		url.QueryEscape(s.apiSecret),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, collectURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The Measurement Protocol returns 2xx even for malformed events; only
	// transport-level failures are reportable.
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("analytics endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

var _ domain.AnalyticsSink = (*GA4Sink)(nil)
