package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Pipeline   PipelineConfig   `toml:"pipeline"`
	Summarizer SummarizerConfig `toml:"summarizer"`
	Observer   ObserverConfig   `toml:"observer"`
	Log        LogConfig        `toml:"log"`
}

type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxUploadMB int    `toml:"max_upload_mb"`
}

type PipelineConfig struct {
	StartPage   int `toml:"start_page"`
	EndPage     int `toml:"end_page"`
	Sentences   int `toml:"sentences"`
	MaxKeywords int `toml:"max_keywords"`
}

type SummarizerConfig struct {
	Stemming  bool     `toml:"stemming"`
	StopWords []string `toml:"stop_words"`
}

type ObserverConfig struct {
	Enabled bool `toml:"enabled"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Bounds of the summary-length slider.
const (
	MinSentences = 1
	MaxSentences = 20
)

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8501", MaxUploadMB: 32},
		Pipeline: PipelineConfig{StartPage: 1, EndPage: 2, Sentences: 5, MaxKeywords: 10},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("PAGESUM_CONFIG")
	}
	if path == "" {
		path = "pagesum.toml"
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Env overrides
	if v := os.Getenv("PAGESUM_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PAGESUM_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.MaxUploadMB = n
		}
	}
	if v := os.Getenv("PAGESUM_SENTENCES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.Sentences = n
		}
	}
	if v := os.Getenv("PAGESUM_MAX_KEYWORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.MaxKeywords = n
		}
	}
	if v := os.Getenv("PAGESUM_STEMMING"); v == "true" || v == "1" {
		cfg.Summarizer.Stemming = true
	}
	if v := os.Getenv("PAGESUM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PAGESUM_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if os.Getenv("PAGESUM_OBSERVER_ENABLED") == "true" || os.Getenv("PAGESUM_OBSERVER_ENABLED") == "1" {
		cfg.Observer.Enabled = true
	}

	return cfg, cfg.Validate()
}

// Validate checks the pipeline defaults the boundary layers start from.
func (c Config) Validate() error {
	p := c.Pipeline
	if p.StartPage < 1 {
		return fmt.Errorf("pipeline.start_page must be at least 1, got %d", p.StartPage)
	}
	if p.EndPage < p.StartPage {
		return fmt.Errorf("pipeline.end_page (%d) must not be before start_page (%d)", p.EndPage, p.StartPage)
	}
	if p.Sentences < MinSentences || p.Sentences > MaxSentences {
		return fmt.Errorf("pipeline.sentences must be in %d-%d, got %d", MinSentences, MaxSentences, p.Sentences)
	}
	if p.MaxKeywords < 0 {
		return fmt.Errorf("pipeline.max_keywords must not be negative, got %d", p.MaxKeywords)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

// Logger builds the process logger from the log section.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
