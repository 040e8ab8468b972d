package credential

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"

	"reviewsclient/internal/config"
)

func TestFromConfig(t *testing.T) {
	jar, _ := cookiejar.New(nil)
	withJar := &http.Client{Jar: jar}

	tests := []struct {
		name   string
		doc    string
		client *http.Client
		check  func(Provider) bool
	}{
		{"cookie", "auth:\n  scheme: csrf\n  source: cookie\n  meta_page: /products/\n", withJar, func(p Provider) bool {
			c, ok := p.(*Cookie)
			return ok && c.Client == withJar && strings.HasSuffix(c.PageURL, "/products/")
		}},
		{"meta", "auth:\n  scheme: csrf\n  source: meta\n  meta_page: /products/\n", nil, func(p Provider) bool {
			m, ok := p.(*MetaTag)
			return ok && strings.HasSuffix(m.PageURL, "/products/")
		}},
		{"static csrf", "auth:\n  scheme: csrf\n  source: static\n  token: t\n", nil, func(p Provider) bool {
			s, ok := p.(Static)
			return ok && s.Kind == SchemeCSRF && s.Value == "t"
		}},
		{"bearer store", "auth:\n  scheme: bearer\n", nil, func(p Provider) bool { _, ok := p.(*Bearer); return ok }},
		{"static bearer", "auth:\n  scheme: bearer\n  source: static\n  token: j\n", nil, func(p Provider) bool {
			s, ok := p.(Static)
			return ok && s.Scheme() == SchemeBearer
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromReader(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			p, err := FromConfig(cfg, tt.client)
			if err != nil {
				t.Fatalf("FromConfig() error = %v", err)
			}
			if !tt.check(p) {
				t.Errorf("FromConfig() = %T", p)
			}
		})
	}
}

func TestFromConfigCookieNeedsJar(t *testing.T) {
	cfg, err := config.FromReader(strings.NewReader("auth:\n  scheme: csrf\n  source: cookie\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromConfig(cfg, &http.Client{}); err == nil {
		t.Error("expected error without cookie jar")
	}
}
