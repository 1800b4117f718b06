// Package feed loads the bar's data document from a URL or local file.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/artpar/lumebar/internal/core"
)

// maxDocumentSize bounds a single data document read.
const maxDocumentSize = 16 << 20

// Source fetches {collections: [...]} documents. Loads are one-shot with no
// retry; a failed load yields an error the caller logs and treats as "no
// data". The generation counter lets callers discard results of loads that
// were superseded by a newer one while still in flight.
type Source struct {
	location   string
	client     *http.Client
	generation atomic.Uint64
}

// New creates a source for a URL (http/https) or a filesystem path.
func New(location string) *Source {
	return &Source{
		location: location,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Location returns the configured URL or path.
func (s *Source) Location() string { return s.location }

// Begin registers a new load and returns its generation. Every call
// supersedes all earlier generations.
func (s *Source) Begin() uint64 {
	return s.generation.Add(1)
}

// Stale reports whether a load generation has been superseded.
func (s *Source) Stale(gen uint64) bool {
	return gen != s.generation.Load()
}

// Load fetches and decodes the document. A document without a collections
// field decodes to an empty document: nothing to render, not an error.
func (s *Source) Load(ctx context.Context) (*core.Document, error) {
	raw, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

func (s *Source) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", s.location, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to load %s: %s", s.location, resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	}

	raw, err := os.ReadFile(s.location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.location, err)
	}
	return raw, nil
}

// Decode parses a JSON data document.
func Decode(raw []byte) (*core.Document, error) {
	var doc core.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode data document: %w", err)
	}
	return &doc, nil
}
