package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	StaticDir      string  `envconfig:"STATIC_DIR" default:"./web/dist"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	LongPressMS    int     `envconfig:"LONG_PRESS_MS" default:"1000"`
	PageWidth      float64 `envconfig:"PAGE_WIDTH" default:"2970"`
	PageHeight     float64 `envconfig:"PAGE_HEIGHT" default:"2100"`
	SampleSketch   bool    `envconfig:"SAMPLE_SKETCH" default:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LongPressMS <= 0 {
		return fmt.Errorf("LONG_PRESS_MS must be positive, got %d", c.LongPressMS)
	}
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("page size must be positive, got %gx%g", c.PageWidth, c.PageHeight)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// LongPressDelay is the hold time before a press counts as a long press.
func (c *Config) LongPressDelay() time.Duration {
	return time.Duration(c.LongPressMS) * time.Millisecond
}

// Origins splits AllowedOrigins into websocket origin patterns and CORS origins.
func (c *Config) Origins() []string {
	var out []string
	for o := range strings.SplitSeq(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OriginPatterns strips the scheme, as the websocket origin check matches hosts.
func (c *Config) OriginPatterns() []string {
	origins := c.Origins()
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if _, host, ok := strings.Cut(o, "://"); ok {
			o = host
		}
		out = append(out, o)
	}
	return out
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
