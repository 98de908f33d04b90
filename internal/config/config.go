// Package config loads runtime settings from a TOML file with
// environment variable overrides. The file is optional; a missing
// config is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds everything the servers need at startup.
type Config struct {
	// OpenAIAPIKey authenticates model calls. Required for the
	// analysis operations; extraction works without it.
	OpenAIAPIKey string `toml:"openai_api_key"`

	// ListenAddr is the HTTP bind address, e.g. ":8080".
	ListenAddr string `toml:"listen_addr"`

	// OCRBaseURL points at an HTTP OCR service. Empty disables the
	// OCR fallback for scanned pages.
	OCRBaseURL string `toml:"ocr_base_url"`

	// MaxPDFPages caps how many pages of a PDF are processed.
	MaxPDFPages int `toml:"max_pdf_pages"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogOutput is stderr or file.
	LogOutput string `toml:"log_output"`
}

// DefaultPath returns ~/.legallm/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".legallm", "config.toml"), nil
}

// Load reads the TOML file at path, falling back to defaults when the
// file does not exist, then applies environment overrides. An empty
// path means the default location.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr:  ":8080",
		MaxPDFPages: 5,
		LogLevel:    "info",
		LogOutput:   "stderr",
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv("LEGALLM_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("LEGALLM_OCR_URL"); v != "" {
		c.OCRBaseURL = v
	}
	if v := os.Getenv("LEGALLM_MAX_PDF_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxPDFPages = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		c.LogOutput = v
	}
}
