// Package authapi talks to the credential provider's HTTP endpoints: the
// usage quota API and the OAuth token refresh endpoint. It never performs an
// interactive login; it only works with tokens that already exist in a
// profile.
package authapi

import (
	"time"

	"github.com/imroc/req/v3"
)

const (
	// Public client id embedded in the CLI tool whose tokens we manage.
	clientID = "app_EMoamEEZ73f0CkXaXp7hrann"

	defaultTokenURL = "https://auth.openai.com/oauth/token"

	// The usage endpoint moves around between deployments; each URL is tried
	// in order and the first 2xx answer wins.
	requestTimeout = 30 * time.Second

	// The usage API rejects non-browser user agents.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	originHeader = "https://chatgpt.com"
)

var defaultUsageURLs = []string{
	"https://chatgpt.com/backend-api/wham/usage",
	"https://api.openai.com/backend-api/wham/usage",
	"https://api.openai.com/api/codex/usage",
	"https://chat.openai.com/backend-api/wham/usage",
}

// Client calls the provider's usage and token endpoints. UsageURLs and
// TokenURL are exported so tests can point them at a local server.
type Client struct {
	http *req.Client

	UsageURLs []string
	TokenURL  string
}

func NewClient() *Client {
	return &Client{
		http:      req.C().SetTimeout(requestTimeout),
		UsageURLs: defaultUsageURLs,
		TokenURL:  defaultTokenURL,
	}
}
