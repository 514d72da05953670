package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.LongPressDelay() != time.Second || cfg.PageWidth != 2970 || cfg.PageHeight != 2100 {
		t.Errorf("defaults = %+v", cfg)
	}
	if l, _ := cfg.Level(); l != slog.LevelInfo {
		t.Errorf("level = %v", l)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LONG_PRESS_MS", "250")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALLOWED_ORIGINS", " https://sketch.example , http://localhost:3000,")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 || cfg.LongPressDelay() != 250*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v", l)
	}
	origins := cfg.Origins()
	if len(origins) != 2 || origins[0] != "https://sketch.example" {
		t.Errorf("Origins() = %q", origins)
	}
	patterns := cfg.OriginPatterns()
	if patterns[0] != "sketch.example" || patterns[1] != "localhost:3000" {
		t.Errorf("OriginPatterns() = %q", patterns)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"long press", "LONG_PRESS_MS", "0"},
		{"page", "PAGE_WIDTH", "-1"},
		{"level", "LOG_LEVEL", "chatty"},
		{"port", "PORT", "eighty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded", tt.key, tt.value)
			}
		})
	}
}
