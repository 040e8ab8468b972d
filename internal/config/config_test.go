package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromReaderDefaults(t *testing.T) {
	cfg, err := FromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	if cfg.Notifications.PollInterval != 60*time.Second {
		t.Errorf("poll interval = %v", cfg.Notifications.PollInterval)
	}
	if cfg.Search.MinLength != 2 {
		t.Errorf("min length = %d", cfg.Search.MinLength)
	}
	if cfg.Auth.Scheme != SchemeCSRF || cfg.Auth.Source != SourceCookie {
		t.Errorf("auth = %s/%s", cfg.Auth.Scheme, cfg.Auth.Source)
	}
}

func TestFromReader(t *testing.T) {
	doc := `
base_url: https://reviews.example.com/
auth:
  scheme: bearer
  token_file: /tmp/tok.yaml
notifications:
  poll_interval: 15s
logging:
  level: debug
  format: json
`
	cfg, err := FromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	if cfg.Auth.Source != SourceStore {
		t.Errorf("bearer default source = %q, want store", cfg.Auth.Source)
	}
	if cfg.Notifications.PollInterval != 15*time.Second {
		t.Errorf("poll interval = %v", cfg.Notifications.PollInterval)
	}
	if got := cfg.Endpoint("/api/search/"); got != "https://reviews.example.com/api/search/" {
		t.Errorf("Endpoint() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown field", "bogus: 1\n", "bogus"},
		{"bad scheme", "auth:\n  scheme: basic\n", "auth.scheme"},
		{"bad csrf source", "auth:\n  scheme: csrf\n  source: store\n", "auth.source for csrf"},
		{"bad bearer source", "auth:\n  scheme: bearer\n  source: meta\n", "auth.source for bearer"},
		{"relative base", "base_url: /x\n", "base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromReader(strings.NewReader(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REVIEWS_BASE_URL", "http://env.example")
	t.Setenv("REVIEWS_AUTH_SCHEME", "bearer")
	t.Setenv("REVIEWS_AUTH_SOURCE", "static")
	t.Setenv("REVIEWS_TOKEN", "from-env")
	t.Setenv("REVIEWS_POLL_INTERVAL", "5s")
	t.Setenv("REVIEWS_SEARCH_MIN_LENGTH", "4")

	cfg, err := FromReader(strings.NewReader("base_url: http://file.example\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://env.example" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.Auth.Token != "from-env" || cfg.Auth.Source != SourceStatic {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Notifications.PollInterval != 5*time.Second || cfg.Search.MinLength != 4 {
		t.Errorf("interval=%v min=%d", cfg.Notifications.PollInterval, cfg.Search.MinLength)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir()) // keep godotenv away from any real .env
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	if cfg == nil || cfg.BaseURL == "" {
		t.Fatal("defaults not returned with missing file")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://file.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("REVIEWS_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REVIEWS_LOG_LEVEL", "") // restored after the test; .env fills it
	os.Unsetenv("REVIEWS_LOG_LEVEL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://file.example" || cfg.Logging.Level != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
}
