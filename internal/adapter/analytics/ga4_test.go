package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cartridge-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGA4Sink_Track(t *testing.T) {
	var got struct {
		query   string
		payload ga4Payload
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.query = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.payload))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sink := NewGA4Sink(config.AnalyticsConfig{
		MeasurementID: "G-TEST123",
		APISecret:     "secret",
		Endpoint:      server.URL,
	}, "server-1")

	err := sink.Track(context.Background(), "quiz_completed", map[string]any{
		"score": 13,
		"tier":  "Arsenal Commander",
	})
	require.NoError(t, err)

	assert.Contains(t, got.query, "measurement_id=G-TEST123")
	assert.Contains(t, got.query, "api_secret=secret")

	assert.Equal(t, "server-1", got.payload.ClientID)
	require.Len(t, got.payload.Events, 1)
	assert.Equal(t, "quiz_completed", got.payload.Events[0].Name)
	assert.Equal(t, "Arsenal Commander", got.payload.Events[0].Params["tier"])
}

func TestGA4Sink_TrackReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	sink := NewGA4Sink(config.AnalyticsConfig{
		MeasurementID: "G-TEST123",
		APISecret:     "secret",
		Endpoint:      server.URL,
	}, "server-1")

	err := sink.Track(context.Background(), "quiz_started", nil)
	assert.Error(t, err)
}
