package authapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchbox-dev/switchbox/internal/accounts"
)

func testAuth() *accounts.AuthFile {
	return &accounts.AuthFile{
		LastRefresh: "2026-01-01T00:00:00Z",
		Tokens: accounts.Tokens{
			AccessToken:  "at-123",
			AccountID:    "acc-1",
			RefreshToken: "rt-123",
		},
	}
}

func TestFetchUsage(t *testing.T) {
	var gotAuth, gotAccount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccount = r.Header.Get("ChatGPT-Account-Id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"plan_type": "pro",
			"rate_limit": {
				"primary_window": {"used_percent": 42.5, "limit_window_seconds": 301, "reset_at": 1767225600},
				"secondary_window": {"used_percent": 10}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient()
	c.UsageURLs = []string{srv.URL}

	usage, err := c.FetchUsage(context.Background(), testAuth())
	require.NoError(t, err)

	assert.Equal(t, "Bearer at-123", gotAuth)
	assert.Equal(t, "acc-1", gotAccount)
	assert.Equal(t, "pro", usage.PlanType)

	require.NotNil(t, usage.PrimaryWindow)
	assert.Equal(t, 42.5, usage.PrimaryWindow.UsedPercent)
	require.NotNil(t, usage.PrimaryWindow.WindowMinutes)
	assert.Equal(t, int64(6), *usage.PrimaryWindow.WindowMinutes) // 301s rounds up
	require.NotNil(t, usage.PrimaryWindow.ResetsAt)
	assert.Equal(t, int64(1767225600), *usage.PrimaryWindow.ResetsAt)

	require.NotNil(t, usage.SecondaryWindow)
	assert.Nil(t, usage.SecondaryWindow.WindowMinutes)
	assert.Nil(t, usage.SecondaryWindow.ResetsAt)
}

func TestFetchUsage_FallsBackToNextURL(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plan_type": "plus"}`))
	}))
	defer good.Close()

	c := NewClient()
	c.UsageURLs = []string{bad.URL, good.URL}

	usage, err := c.FetchUsage(context.Background(), testAuth())
	require.NoError(t, err)
	assert.Equal(t, "plus", usage.PlanType)
	assert.Nil(t, usage.PrimaryWindow)
}

func TestFetchUsage_AllEndpointsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient()
	c.UsageURLs = []string{srv.URL, srv.URL + "/alt"}

	_, err := c.FetchUsage(context.Background(), testAuth())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
	assert.Contains(t, err.Error(), srv.URL+"/alt")
}

func TestFetchUsage_NoAccessToken(t *testing.T) {
	auth := testAuth()
	auth.Tokens.AccessToken = ""

	_, err := NewClient().FetchUsage(context.Background(), auth)
	assert.ErrorContains(t, err, "no access token")
}
