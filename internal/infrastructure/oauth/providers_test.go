package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	p := NewGoogleProvider("client-1", "secret", "http://localhost/auth/callback")
	assert.Equal(t, "google", p.Name())

	raw := p.AuthCodeURL("state-abc")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "state-abc", q.Get("state"))
	assert.Equal(t, "http://localhost/auth/callback", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "userinfo.email")
}

func TestAppleProvider_AuthCodeURL(t *testing.T) {
	p := NewAppleProvider("client-2", "signed-jwt", "http://localhost/auth/callback")
	assert.Equal(t, "apple", p.Name())

	raw := p.AuthCodeURL("state-xyz")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "appleid.apple.com", u.Host)
	assert.Equal(t, "form_post", u.Query().Get("response_mode"))
}

// tokenServer fakes the provider's token endpoint.
func tokenServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleProvider_ExchangeCode(t *testing.T) {
	t.Run("prefers the id token", func(t *testing.T) {
		srv := tokenServer(t, `{"access_token":"at-1","token_type":"bearer","id_token":"idt-1"}`)
		p := NewGoogleProvider("client-1", "secret", "http://localhost/cb")
		p.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

		got, err := p.ExchangeCode(context.Background(), "code-1")
		require.NoError(t, err)
		assert.Equal(t, "idt-1", got)
	})

	t.Run("falls back to the access token", func(t *testing.T) {
		srv := tokenServer(t, `{"access_token":"at-2","token_type":"bearer"}`)
		p := NewGoogleProvider("client-1", "secret", "http://localhost/cb")
		p.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

		got, err := p.ExchangeCode(context.Background(), "code-2")
		require.NoError(t, err)
		assert.Equal(t, "at-2", got)
	})
}

func TestAppleProvider_ExchangeCode(t *testing.T) {
	t.Run("requires an id token", func(t *testing.T) {
		srv := tokenServer(t, `{"access_token":"at-3","token_type":"bearer"}`)
		p := NewAppleProvider("client-2", "signed-jwt", "http://localhost/cb")
		p.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

		_, err := p.ExchangeCode(context.Background(), "code-3")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("returns the id token", func(t *testing.T) {
		srv := tokenServer(t, `{"access_token":"at-4","token_type":"bearer","id_token":"idt-4"}`)
		p := NewAppleProvider("client-2", "signed-jwt", "http://localhost/cb")
		p.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

		got, err := p.ExchangeCode(context.Background(), "code-4")
		require.NoError(t, err)
		assert.Equal(t, "idt-4", got)
	})
}
