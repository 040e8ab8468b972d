// Package dispatch sends authenticated requests to the review site and
// classifies the outcome. It never decides what the page does with a
// result; callers in internal/reviews own the per-endpoint behaviour.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"reviewsclient/internal/credential"
	"reviewsclient/internal/logging"
)

const maxBody = 1 << 20

var ErrAuthRequired = errors.New("authentication required")

// StatusError is any non-2xx answer other than 401.
type StatusError struct {
	Status  int
	Message string // server supplied "error" (or "detail") field, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed: %d %s", e.Status, http.StatusText(e.Status))
}

type Request struct {
	Method string
	Path   string // relative to the base URL; may be a form action
	Query  url.Values
	JSON   any        // sent as application/json when non-nil
	Form   url.Values // sent as application/x-www-form-urlencoded when non-nil
}

type Dispatcher struct {
	client *http.Client
	base   *url.URL
	creds  credential.Provider
}

func New(client *http.Client, baseURL string, creds credential.Provider) (*Dispatcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if creds == nil {
		creds = credential.None{}
	}
	return &Dispatcher{client: client, base: base, creds: creds}, nil
}

// URL resolves path against the base URL. A query carried by path (form
// actions like /report/5/?next=/reviews/) is kept and merged with q.
func (d *Dispatcher) URL(path string, q url.Values) string {
	ref := &url.URL{Path: path}
	if p, err := url.Parse(path); err == nil {
		ref = &url.URL{Path: p.Path, RawQuery: p.RawQuery}
	}
	ref.Path = strings.TrimRight(d.base.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	if len(q) > 0 {
		merged, _ := url.ParseQuery(ref.RawQuery)
		for k, vs := range q {
			for _, v := range vs {
				merged.Add(k, v)
			}
		}
		ref.RawQuery = merged.Encode()
	}
	return d.base.ResolveReference(ref).String()
}

// Do sends r and decodes a JSON success body into out when out is non-nil.
// The credential is read exactly once. 401 yields ErrAuthRequired, other
// non-2xx statuses a *StatusError. Nothing is retried.
func (d *Dispatcher) Do(ctx context.Context, r Request, out any) error {
	req, err := d.newRequest(ctx, r)
	if err != nil {
		return err
	}
	cred := d.creds.Credential(ctx)
	cred.Apply(req)

	log := logging.From(ctx).With("method", req.Method, "path", req.URL.Path)
	if !cred.Present() && d.creds.Scheme() != "" {
		log.Debug("dispatch.no_credential", "scheme", d.creds.Scheme())
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		log.Info("dispatch.unauthorized")
		return ErrAuthRequired
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		se := &StatusError{Status: resp.StatusCode, Message: errorMessage(body)}
		log.Info("dispatch.failed", "status", resp.StatusCode, "message", se.Message)
		return se
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (d *Dispatcher) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	case r.Form != nil:
		body, contentType = strings.NewReader(r.Form.Encode()), "application/x-www-form-urlencoded"
	}
	req, err := http.NewRequestWithContext(ctx, method, d.URL(r.Path, r.Query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func errorMessage(body []byte) string {
	var m struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &m) != nil {
		return ""
	}
	if m.Error != "" {
		return m.Error
	}
	return m.Detail
}

// Kind buckets an error for the user-facing layer.
type Kind int

const (
	KindNone Kind = iota
	KindAuthRequired
	KindFailure
)

func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAuthRequired):
		return KindAuthRequired
	default:
		return KindFailure
	}
}

// ServerMessage returns the server supplied error text carried by err.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
