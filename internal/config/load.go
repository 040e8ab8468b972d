package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads path, then applies .env and REVIEWS_* overrides. A missing
// file is not fatal: defaults are returned alongside the open error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional .env in the working directory

	f, err := os.Open(path)
	if err != nil {
		var cfg Config
		ApplyEnv(&cfg)
		cfg.Defaults()
		if verr := cfg.Validate(); verr != nil {
			return nil, verr
		}
		return &cfg, err
	}
	defer f.Close()
	return FromReader(f)
}

// IsNotExist reports whether a Load error only means the file was absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func FromReader(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	ApplyEnv(&cfg)
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg with any REVIEWS_* variables that are set.
func ApplyEnv(cfg *Config) {
	setString(&cfg.BaseURL, "REVIEWS_BASE_URL")
	setString(&cfg.Auth.Scheme, "REVIEWS_AUTH_SCHEME")
	setString(&cfg.Auth.Source, "REVIEWS_AUTH_SOURCE")
	setString(&cfg.Auth.Token, "REVIEWS_TOKEN")
	setString(&cfg.Auth.TokenFile, "REVIEWS_TOKEN_FILE")
	setString(&cfg.Logging.Level, "REVIEWS_LOG_LEVEL")
	setString(&cfg.Logging.Format, "REVIEWS_LOG_FORMAT")
	setString(&cfg.Telegram.BotToken, "REVIEWS_TELEGRAM_BOT_TOKEN")
	setString(&cfg.Telegram.ChatID, "REVIEWS_TELEGRAM_CHAT_ID")
	if v, ok := os.LookupEnv("REVIEWS_POLL_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Notifications.PollInterval = d
		}
	}
	if v, ok := os.LookupEnv("REVIEWS_SEARCH_MIN_LENGTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.MinLength = n
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
