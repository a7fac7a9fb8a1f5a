package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSPAHandlerSkipsMissingDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if h := newSPAHandler("", logger); h != nil {
		t.Error("expected nil handler for empty dir")
	}
	if h := newSPAHandler(filepath.Join(t.TempDir(), "nope"), logger); h != nil {
		t.Error("expected nil handler for missing dir")
	}
}

func TestSPAHandlerFallsBackToIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>dashboard</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := newSPAHandler(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if h == nil {
		t.Fatal("expected handler for existing dir")
	}

	// A real file is served as-is.
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	if !strings.Contains(w.Body.String(), "console.log") {
		t.Errorf("expected app.js contents, got %q", w.Body.String())
	}

	// A client-side route falls back to the shell.
	w = httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/w/demo/trips/t1", nil))
	if !strings.Contains(w.Body.String(), "dashboard") {
		t.Errorf("expected index fallback, got %q", w.Body.String())
	}
}
