package asset

import (
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
)

func init() {
	// instantiateStreaming requires this exact type.
	mime.AddExtensionType(".wasm", "application/wasm")
}

// Handler serves the page bundle: index.html, wasm_exec.js and the engine wasm.
type Handler struct {
	dir string
}

// NewHandler serves files from dir.
func NewHandler(dir string) *Handler {
	if _, err := os.Stat(dir); err != nil {
		slog.Warn("static dir unavailable", "error", err, "dir", dir)
	}
	return &Handler{dir: dir}
}

// Serve returns an http.Handler for the bundle. Fingerprinted files under
// /assets/ are cached for good; everything else is revalidated.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		if strings.HasPrefix(clean, "/assets/") {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		fs.ServeHTTP(w, r)
	})
}
