package credential

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"reviewsclient/internal/logging"
)

// Cookie reads the csrftoken cookie the server set in Jar for Base.
//
// When Client and PageURL are set and the jar has no token yet, PageURL is
// fetched once through Client so the server can set the cookie, the way
// the browser gets it from the initial page load.
type Cookie struct {
	Jar  http.CookieJar
	Base *url.URL
	Name string // defaults to csrftoken

	Client  *http.Client
	PageURL string

	mu     sync.Mutex
	primed bool
}

func NewCookie(jar http.CookieJar, base *url.URL) *Cookie {
	return &Cookie{Jar: jar, Base: base, Name: CSRFCookieName}
}

// NewPrimedCookie is NewCookie plus a page that sets the cookie on first use.
// client must share jar.
func NewPrimedCookie(client *http.Client, base *url.URL, pageURL string) *Cookie {
	c := NewCookie(client.Jar, base)
	c.Client = client
	c.PageURL = pageURL
	return c
}

func (c *Cookie) Scheme() Scheme { return SchemeCSRF }

func (c *Cookie) Credential(ctx context.Context) Credential {
	cred := Credential{Scheme: SchemeCSRF}
	if c == nil || c.Jar == nil || c.Base == nil {
		return cred
	}
	cred.Value = c.read()
	if cred.Value == "" && c.prime(ctx) {
		cred.Value = c.read()
	}
	return cred
}

func (c *Cookie) read() string {
	name := c.Name
	if name == "" {
		name = CSRFCookieName
	}
	for _, ck := range c.Jar.Cookies(c.Base) {
		if ck.Name != name {
			continue
		}
		if v, err := url.PathUnescape(ck.Value); err == nil {
			return v
		}
		return ck.Value
	}
	return ""
}

// prime fetches PageURL at most once. It reports whether a fetch happened.
func (c *Cookie) prime(ctx context.Context) bool {
	if c.Client == nil || c.PageURL == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.primed {
		return false
	}
	c.primed = true
	if err := c.fetch(ctx); err != nil {
		logging.From(ctx).Warn("credential.cookie.prime", "url", c.PageURL, "err", err)
	}
	return true
}

func (c *Cookie) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/html")
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("cookie page: %s", resp.Status)
	}
	return nil
}
