package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
	"collections": [
		{
			"name": "Errors",
			"items": [{"title": "Parse error", "text": "line 3"}]
		}
	]
}`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	doc, err := New(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Collections, 1)
	assert.Equal(t, "Errors", doc.Collections[0].Name)
	assert.Equal(t, "Parse error", doc.Collections[0].Items[0].Title)
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	doc, err := New(srv.URL).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Collections, 1)
}

func TestLoadHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Load(context.Background())
	assert.Error(t, err)
}

func TestDecodeMissingCollections(t *testing.T) {
	doc, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Collections)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	assert.Error(t, err)
}

func TestGenerationSupersedes(t *testing.T) {
	s := New("data.json")

	first := s.Begin()
	assert.False(t, s.Stale(first))

	second := s.Begin()
	assert.True(t, s.Stale(first), "earlier load must be discarded")
	assert.False(t, s.Stale(second))
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}
