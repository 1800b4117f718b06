// Package icons resolves icon names to display content. The demo server
// uses the CDN resolver to inline SVG markup; the TUI uses the glyph table.
// Memoization is caller-owned via the Memo wrapper.
package icons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a name cannot be resolved. Callers render
// nothing and log a diagnostic; an unresolvable icon never aborts a render.
var ErrNotFound = errors.New("icon not found")

// DefaultCDN serves the Phosphor icon set the original widget used.
const DefaultCDN = "https://cdn.jsdelivr.net/npm/@phosphor-icons/core@2.1.1/assets"

// Resolver maps an icon name to markup or glyph text.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// CDN fetches SVG markup over HTTP. Names ending in "-fill" select the
// filled variant, anything else the regular one.
type CDN struct {
	baseURL string
	client  *http.Client
}

// NewCDN creates a CDN resolver. An empty base falls back to DefaultCDN.
func NewCDN(baseURL string) *CDN {
	if baseURL == "" {
		baseURL = DefaultCDN
	}
	return &CDN{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CDN) Resolve(ctx context.Context, name string) (string, error) {
	variant := "regular"
	if strings.HasSuffix(name, "-fill") {
		variant = "fill"
	}
	url := fmt.Sprintf("%s/%s/%s.svg", c.baseURL, variant, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch icon %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	markup, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(markup), nil
}

// Memo wraps a resolver with an in-memory cache. Successes are cached;
// failures are retried on the next lookup. Redundant concurrent fetches for
// the same key are tolerated, the last write wins.
type Memo struct {
	next  Resolver
	mu    sync.RWMutex
	cache map[string]string
}

// NewMemo wraps next with memoization.
func NewMemo(next Resolver) *Memo {
	return &Memo{next: next, cache: make(map[string]string)}
}

func (m *Memo) Resolve(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	cached, ok := m.cache[name]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	content, err := m.next.Resolve(ctx, name)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.cache[name] = content
	m.mu.Unlock()
	return content, nil
}

// Glyphs maps icon names to terminal glyphs. Unknown names resolve to
// ErrNotFound so callers can degrade to no icon.
type Glyphs struct{}

var glyphTable = map[string]string{
	"arrows-in-simple":  "▾",
	"arrows-out-simple": "▴",
	"bug":               "✗",
	"warning":           "⚠",
	"info":              "ℹ",
	"check":             "✓",
	"check-circle":      "✓",
	"fire":              "!",
	"package":           "⬡",
	"files":             "≡",
	"gauge":             "◔",
	"clock":             "◷",
	"lightning":         "⚡",
	"link":              "→",
	"wrench":            "⚒",
}

// NewGlyphs creates the terminal glyph resolver.
func NewGlyphs() *Glyphs { return &Glyphs{} }

func (g *Glyphs) Resolve(_ context.Context, name string) (string, error) {
	// Variant suffix does not change the terminal glyph.
	base := strings.TrimSuffix(name, "-fill")
	if glyph, ok := glyphTable[base]; ok {
		return glyph, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}
