package credential

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"reviewsclient/internal/logging"
)

// MetaTag takes the CSRF token from <meta name="csrf-token" content="...">
// on a page of the site. The page is fetched once and the token reused
// until Refresh is called, the way a loaded page keeps its meta tags.
type MetaTag struct {
	Client  *http.Client
	PageURL string

	mu     sync.Mutex
	token  string
	loaded bool
}

func NewMetaTag(client *http.Client, pageURL string) *MetaTag {
	if client == nil {
		client = http.DefaultClient
	}
	return &MetaTag{Client: client, PageURL: pageURL}
}

func (m *MetaTag) Scheme() Scheme { return SchemeCSRF }

func (m *MetaTag) Credential(ctx context.Context) Credential {
	m.mu.Lock()
	loaded := m.loaded
	tok := m.token
	m.mu.Unlock()
	if !loaded {
		if err := m.Refresh(ctx); err != nil {
			logging.From(ctx).Warn("credential.meta.fetch", "url", m.PageURL, "err", err)
		}
		m.mu.Lock()
		tok = m.token
		m.mu.Unlock()
	}
	return Credential{Scheme: SchemeCSRF, Value: tok}
}

// Refresh re-reads the page and replaces the cached token.
func (m *MetaTag) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.PageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/html")
	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("meta page: %s", resp.Status)
	}
	tok, err := ParseMetaToken(resp.Body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.token = tok
	m.loaded = true
	m.mu.Unlock()
	return nil
}

// ParseMetaToken returns the content of the first csrf-token meta tag, or
// "" when the document has none.
func ParseMetaToken(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return "", nil
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			if t.Data != "meta" {
				continue
			}
			var name, content string
			for _, a := range t.Attr {
				switch strings.ToLower(a.Key) {
				case "name":
					name = a.Val
				case "content":
					content = a.Val
				}
			}
			if name == CSRFMetaName {
				return content, nil
			}
		case html.EndTagToken:
			if tn, _ := z.TagName(); string(tn) == "head" {
				return "", nil
			}
		}
	}
}
