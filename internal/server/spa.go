package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// newSPAHandler serves the built dashboard bundle, or returns nil when
// dir does not point at a build output so the caller skips mounting.
// Paths that match a file on disk are served as-is; everything else
// falls back to index.html, so deep links into the map dashboard
// resolve client-side.
func newSPAHandler(dir string, logger *slog.Logger) http.HandlerFunc {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	logger.Info("serving dashboard bundle", "dir", dir)

	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
