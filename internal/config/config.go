package config

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	BaseURL string `yaml:"base_url"`

	HTTP struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`

	Auth AuthConfig `yaml:"auth"`

	Notifications struct {
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"notifications"`

	Search struct {
		MinLength int `yaml:"min_length"` // queries need more runes than this
	} `yaml:"search"`

	Logging struct {
		Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
		Format string `yaml:"format"` // "text" | "json"
	} `yaml:"logging"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// AuthConfig selects the one credential scheme a client uses.
type AuthConfig struct {
	Scheme    string `yaml:"scheme"` // "csrf" | "bearer"
	Source    string `yaml:"source"` // csrf: "meta" | "cookie" | "static"; bearer: "store" | "static"
	Token     string `yaml:"token"`  // value for source "static"
	TokenFile string `yaml:"token_file"`
	MetaPage  string `yaml:"meta_page"` // page carrying the csrf meta tag or setting the csrftoken cookie
}

const (
	SchemeCSRF   = "csrf"
	SchemeBearer = "bearer"

	SourceMeta   = "meta"
	SourceCookie = "cookie"
	SourceStore  = "store"
	SourceStatic = "static"
)

func (c *Config) Defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 10 * time.Second
	}
	if c.Auth.Scheme == "" {
		c.Auth.Scheme = SchemeCSRF
	}
	if c.Auth.Source == "" {
		if c.Auth.Scheme == SchemeBearer {
			c.Auth.Source = SourceStore
		} else {
			c.Auth.Source = SourceCookie
		}
	}
	if c.Auth.TokenFile == "" {
		c.Auth.TokenFile = ".reviewsctl-token.yaml"
	}
	if c.Auth.MetaPage == "" {
		c.Auth.MetaPage = "/"
	}
	if c.Notifications.PollInterval == 0 {
		c.Notifications.PollInterval = 60 * time.Second
	}
	if c.Search.MinLength == 0 {
		c.Search.MinLength = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) Validate() error {
	var errs []string
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "base_url must be an absolute http(s) URL")
	}
	switch c.Auth.Scheme {
	case SchemeCSRF:
		switch c.Auth.Source {
		case SourceMeta, SourceCookie, SourceStatic:
		default:
			errs = append(errs, "auth.source for csrf must be one of meta|cookie|static")
		}
	case SchemeBearer:
		switch c.Auth.Source {
		case SourceStore, SourceStatic:
		default:
			errs = append(errs, "auth.source for bearer must be one of store|static")
		}
	default:
		errs = append(errs, "auth.scheme must be csrf or bearer")
	}
	if c.Notifications.PollInterval < 0 {
		errs = append(errs, "notifications.poll_interval must be positive")
	}
	if c.Search.MinLength < 0 {
		errs = append(errs, "search.min_length must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Endpoint resolves path against BaseURL.
func (c *Config) Endpoint(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
