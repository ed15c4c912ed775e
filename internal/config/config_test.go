package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected base URL %q, got %q", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Listen != DefaultListen {
		t.Fatalf("expected listen %q, got %q", DefaultListen, cfg.Listen)
	}
	if cfg.APIKey != "" {
		t.Fatalf("expected empty API key, got %q", cfg.APIKey)
	}
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("MATHTOOLS_BASE_URL", "http://math.local:8111/")
	t.Setenv("MATHTOOLS_API_KEY", " secret ")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://math.local:8111" {
		t.Fatalf("expected trimmed base URL, got %q", cfg.BaseURL)
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("expected trimmed API key, got %q", cfg.APIKey)
	}
}

func TestLoadFileOverridesEnvironment(t *testing.T) {
	t.Setenv("MATHTOOLS_BASE_URL", "http://from-env:8000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "base_url: https://from-file:9000\napi_key: filekey\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://from-file:9000" {
		t.Fatalf("expected file base URL to win, got %q", cfg.BaseURL)
	}
	if cfg.APIKey != "filekey" {
		t.Fatalf("expected file API key to win, got %q", cfg.APIKey)
	}
	// Fields the file omits keep their resolved values.
	if cfg.Listen != DefaultListen {
		t.Fatalf("expected default listen, got %q", cfg.Listen)
	}
}

func TestLoadMissingFileFallsBackToEnvironment(t *testing.T) {
	t.Setenv("MATHTOOLS_BASE_URL", "http://from-env:8000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://from-env:8000" {
		t.Fatalf("expected env base URL, got %q", cfg.BaseURL)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t-broken"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidateRejectsNonHTTPBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "http", baseURL: "http://127.0.0.1:8000", wantErr: false},
		{name: "https", baseURL: "https://math.example.com", wantErr: false},
		{name: "no scheme", baseURL: "127.0.0.1:8000", wantErr: true},
		{name: "ftp", baseURL: "ftp://math.example.com", wantErr: true},
		{name: "empty", baseURL: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Config{BaseURL: tc.baseURL}.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadRejectsInvalidBaseURLFromEnvironment(t *testing.T) {
	t.Setenv("MATHTOOLS_BASE_URL", "math.local:8111")

	if _, err := Load(""); err == nil {
		t.Fatal("expected a validation error")
	}
}
