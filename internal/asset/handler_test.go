package asset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestServe(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "engine.wasm"), []byte("\x00asm"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "app.1234.js"), []byte("//"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewHandler(dir).Serve()
	tests := []struct {
		path        string
		status      int
		contentType string
		cache       string
	}{
		{"/engine.wasm", http.StatusOK, "application/wasm", "no-cache"},
		{"/assets/app.1234.js", http.StatusOK, "", "public, max-age=31536000, immutable"},
		{"/missing.js", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.contentType != "" && rec.Header().Get("Content-Type") != tt.contentType {
				t.Errorf("content type = %q, want %q", rec.Header().Get("Content-Type"), tt.contentType)
			}
			if got := rec.Header().Get("Cache-Control"); got != tt.cache {
				t.Errorf("cache control = %q, want %q", got, tt.cache)
			}
		})
	}
}
