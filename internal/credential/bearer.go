package credential

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reviewsclient/internal/logging"
)

// Bearer reads access_token from a TokenStore on every request.
type Bearer struct {
	Store *TokenStore
	Now   func() time.Time
}

func NewBearer(store *TokenStore) *Bearer {
	return &Bearer{Store: store, Now: time.Now}
}

func (b *Bearer) Scheme() Scheme { return SchemeBearer }

func (b *Bearer) Credential(ctx context.Context) Credential {
	cred := Credential{Scheme: SchemeBearer}
	if b == nil || b.Store == nil {
		return cred
	}
	tok, err := b.Store.Get(AccessTokenKey)
	if err != nil {
		logging.From(ctx).Warn("credential.bearer.read", "path", b.Store.Path, "err", err)
		return cred
	}
	cred.Value = tok
	if tok != "" {
		now := time.Now
		if b.Now != nil {
			now = b.Now
		}
		if exp, err := TokenExpiry(tok); err == nil && !exp.IsZero() && now().After(exp) {
			logging.From(ctx).Warn("credential.bearer.expired", "expired_at", exp.UTC())
		}
	}
	return cred
}

var ErrNoExpiry = errors.New("token has no exp claim")

// TokenExpiry reads the exp claim without verifying the signature; the
// client has no key and only uses it for diagnostics.
func TokenExpiry(tok string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}
