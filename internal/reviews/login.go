package reviews

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"reviewsclient/internal/credential"
	"reviewsclient/internal/dispatch"
)

const tokenPath = "/api/token/"

// Login exchanges username and password for a JWT pair and keeps it in
// store, where the bearer provider will find it.
func (c *Client) Login(ctx context.Context, store *credential.TokenStore, username, password string) error {
	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	err := c.d.Do(ctx, dispatch.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		JSON:   map[string]string{"username": username, "password": password},
	}, &resp)
	if errors.Is(err, dispatch.ErrAuthRequired) {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	if err != nil {
		return err
	}
	if resp.Access == "" {
		return errors.New("token response has no access token")
	}
	return store.Set(map[string]string{
		credential.AccessTokenKey:  resp.Access,
		credential.RefreshTokenKey: resp.Refresh,
	})
}

// Logout forgets any stored tokens.
func Logout(store *credential.TokenStore) error {
	return store.Clear()
}
