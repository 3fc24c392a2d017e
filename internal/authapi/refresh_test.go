package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchbox-dev/switchbox/internal/accounts"
)

func TestRefresh(t *testing.T) {
	var gotBody tokenRefreshRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"access_token":"at-new","id_token":"idt-new","refresh_token":"rt-new"}`))
	}))
	defer srv.Close()

	c := NewClient()
	c.TokenURL = srv.URL

	auth := testAuth()
	require.NoError(t, c.Refresh(context.Background(), auth))

	assert.Equal(t, clientID, gotBody.ClientID)
	assert.Equal(t, "refresh_token", gotBody.GrantType)
	assert.Equal(t, "rt-123", gotBody.RefreshToken)
	assert.Equal(t, "openid profile email", gotBody.Scope)

	assert.Equal(t, "at-new", auth.Tokens.AccessToken)
	assert.Equal(t, "idt-new", auth.Tokens.IDToken)
	assert.Equal(t, "rt-new", auth.Tokens.RefreshToken)

	stamped, err := time.Parse(time.RFC3339, auth.LastRefresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stamped, time.Minute)
}

func TestRefresh_KeepsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"at-new"}`))
	}))
	defer srv.Close()

	c := NewClient()
	c.TokenURL = srv.URL

	auth := testAuth()
	require.NoError(t, c.Refresh(context.Background(), auth))

	assert.Equal(t, "at-new", auth.Tokens.AccessToken)
	assert.Equal(t, "rt-123", auth.Tokens.RefreshToken)
}

func TestRefresh_TerminalErrorCodes(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{"nested code", `{"error":{"code":"refresh_token_expired"}}`},
		{"top level code", `{"code":"refresh_token_reused"}`},
		{"invalidated", `{"error":{"code":"refresh_token_invalidated"}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient()
			c.TokenURL = srv.URL

			err := c.Refresh(context.Background(), testAuth())
			assert.ErrorIs(t, err, ErrReauthRequired)
		})
	}
}

func TestRefresh_OtherErrorNotTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"server_error"}}`))
	}))
	defer srv.Close()

	c := NewClient()
	c.TokenURL = srv.URL

	err := c.Refresh(context.Background(), testAuth())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReauthRequired)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestRefreshFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"refresh_token":"rt-new"}`))
	}))
	defer srv.Close()

	c := NewClient()
	c.TokenURL = srv.URL

	path := filepath.Join(t.TempDir(), "alice.json")
	require.NoError(t, testAuth().Save(path))

	auth, err := c.RefreshFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "rt-new", auth.Tokens.RefreshToken)

	reloaded, err := accounts.LoadAuthFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rt-new", reloaded.Tokens.RefreshToken)
	assert.Equal(t, auth.LastRefresh, reloaded.LastRefresh)
}
