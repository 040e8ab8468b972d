// Package credential resolves the one credential a client attaches to its
// requests. CSRF synchronizer tokens and bearer tokens share the Provider
// interface so the dispatcher never knows where a value came from.
package credential

import (
	"context"
	"net/http"
)

type Scheme string

const (
	SchemeCSRF   Scheme = "csrf"
	SchemeBearer Scheme = "bearer"
)

const (
	CSRFHeader       = "X-CSRFToken"
	CSRFCookieName   = "csrftoken"
	CSRFMetaName     = "csrf-token"
	AccessTokenKey   = "access_token"
	RefreshTokenKey  = "refresh_token"
	authorizationHdr = "Authorization"
)

type Credential struct {
	Scheme Scheme
	Value  string
}

// Present reports whether a value was found.
func (c Credential) Present() bool { return c.Value != "" }

// Apply attaches c to req. An absent credential leaves req untouched; the
// request still goes out and the server decides.
func (c Credential) Apply(req *http.Request) {
	if !c.Present() {
		return
	}
	switch c.Scheme {
	case SchemeBearer:
		req.Header.Set(authorizationHdr, "Bearer "+c.Value)
	default:
		req.Header.Set(CSRFHeader, c.Value)
	}
}

// Provider yields the credential for a single outgoing request. A missing
// credential is reported as a zero Value, never as an error.
type Provider interface {
	Credential(ctx context.Context) Credential
	Scheme() Scheme
}

// Static always returns the same value.
type Static struct {
	Kind  Scheme
	Value string
}

func (s Static) Credential(context.Context) Credential {
	return Credential{Scheme: s.Kind, Value: s.Value}
}

func (s Static) Scheme() Scheme { return s.Kind }

// None is used for endpoints that take no credential.
type None struct{}

func (None) Credential(context.Context) Credential { return Credential{} }
func (None) Scheme() Scheme                       { return "" }
