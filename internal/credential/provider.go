package credential

import (
	"fmt"
	"net/http"
	"net/url"

	"reviewsclient/internal/config"
)

// FromConfig builds the single provider selected by cfg.Auth. client must
// carry the cookie jar when the cookie source is used.
func FromConfig(cfg *config.Config, client *http.Client) (Provider, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	a := cfg.Auth
	switch a.Scheme {
	case config.SchemeCSRF:
		switch a.Source {
		case config.SourceMeta:
			return NewMetaTag(client, cfg.Endpoint(a.MetaPage)), nil
		case config.SourceCookie:
			if client == nil || client.Jar == nil {
				return nil, fmt.Errorf("cookie source needs an http client with a cookie jar")
			}
			return NewPrimedCookie(client, base, cfg.Endpoint(a.MetaPage)), nil
		case config.SourceStatic:
			return Static{Kind: SchemeCSRF, Value: a.Token}, nil
		}
	case config.SchemeBearer:
		switch a.Source {
		case config.SourceStore:
			return NewBearer(NewTokenStore(a.TokenFile)), nil
		case config.SourceStatic:
			return Static{Kind: SchemeBearer, Value: a.Token}, nil
		}
	}
	return nil, fmt.Errorf("unsupported auth %s/%s", a.Scheme, a.Source)
}
