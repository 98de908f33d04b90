package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Point at a path that does not exist; defaults apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.MaxPDFPages != 5 {
		t.Errorf("MaxPDFPages = %d, want 5", cfg.MaxPDFPages)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.LogOutput != "stderr" {
		t.Errorf("LogOutput = %q, want stderr", cfg.LogOutput)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
openai_api_key = "sk-test"
listen_addr = ":9090"
ocr_base_url = "http://ocr.internal:7000"
max_pdf_pages = 10
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("OpenAIAPIKey = %q", cfg.OpenAIAPIKey)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.OCRBaseURL != "http://ocr.internal:7000" {
		t.Errorf("OCRBaseURL = %q", cfg.OCRBaseURL)
	}
	if cfg.MaxPDFPages != 10 {
		t.Errorf("MaxPDFPages = %d", cfg.MaxPDFPages)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`listen_addr = ":9090"`), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("LEGALLM_LISTEN_ADDR", ":7070")
	t.Setenv("LEGALLM_OCR_URL", "http://env-ocr:1234")
	t.Setenv("LEGALLM_MAX_PDF_PAGES", "3")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OpenAIAPIKey != "sk-env" {
		t.Errorf("OpenAIAPIKey = %q, want env value", cfg.OpenAIAPIKey)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, env should override file", cfg.ListenAddr)
	}
	if cfg.OCRBaseURL != "http://env-ocr:1234" {
		t.Errorf("OCRBaseURL = %q", cfg.OCRBaseURL)
	}
	if cfg.MaxPDFPages != 3 {
		t.Errorf("MaxPDFPages = %d", cfg.MaxPDFPages)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidEnvPagesIgnored(t *testing.T) {
	t.Setenv("LEGALLM_MAX_PDF_PAGES", "not-a-number")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MaxPDFPages != 5 {
		t.Errorf("MaxPDFPages = %d, want default 5", cfg.MaxPDFPages)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("listen_addr = [broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}
