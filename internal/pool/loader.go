// Package pool loads the question source document. Load failure is never
// fatal: the quiz must stay startable, so a broken or unreachable source
// degrades to a small embedded pool.
package pool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/logger"

	_ "embed"

	"go.uber.org/zap"
)

//go:embed fallback.json
var fallbackDocument []byte

// Loader reads a question pool document from a filesystem path or an
// http(s) URL.
type Loader struct {
	source string
	client *http.Client
}

// NewLoader creates a Loader for source.
func NewLoader(source string) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Load fetches and parses the question document. On any failure it logs the
// cause and returns the embedded fallback pool instead of an error.
func (l *Loader) Load(ctx context.Context) *domain.PoolDocument {
	doc, err := l.load(ctx)
	if err != nil {
		logger.Get().Warn("Failed to load question pool, using fallback",
			zap.String("source", l.source),
			zap.Error(err),
		)
		return Fallback()
	}
	logger.Get().Info("Question pool loaded",
		zap.String("source", l.source),
		zap.Int("easy", len(doc.Easy)),
		zap.Int("medium", len(doc.Medium)),
		zap.Int("hard", len(doc.Hard)),
		zap.Int("target_length", doc.TargetLength()),
	)
	return doc
}

func (l *Loader) load(ctx context.Context) (*domain.PoolDocument, error) {
	if l.source == "" {
		return nil, fmt.Errorf("no question source configured")
	}

	var data []byte
	var err error
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		data, err = l.fetch(ctx)
	} else {
		data, err = os.ReadFile(l.source)
	}
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("question source returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Parse decodes a question pool document and validates its quotas.
func Parse(data []byte) (*domain.PoolDocument, error) {
	var doc domain.PoolDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse question document: %w", err)
	}
	if doc.TargetLength() <= 0 {
		return nil, fmt.Errorf("question document has no sampling quotas")
	}
	return &doc, nil
}

// Fallback returns the embedded minimal pool. The embedded document is
// checked by tests, so a parse failure here is a build defect.
func Fallback() *domain.PoolDocument {
	doc, err := Parse(fallbackDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded fallback pool is invalid: %v", err))
	}
	return doc
}
