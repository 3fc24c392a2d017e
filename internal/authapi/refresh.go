package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/switchbox-dev/switchbox/internal/accounts"
)

// ErrReauthRequired means the refresh token can no longer be exchanged and
// the user must log in with the CLI tool again to obtain a fresh one.
var ErrReauthRequired = errors.New("refresh token no longer valid, log in with the codex CLI again")

type tokenRefreshRequest struct {
	ClientID     string `json:"client_id"`
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

type tokenRefreshResponse struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Error codes that mean the token is gone for good rather than a transient
// failure.
var terminalRefreshCodes = map[string]bool{
	"refresh_token_expired":     true,
	"refresh_token_reused":      true,
	"refresh_token_invalidated": true,
}

// Refresh exchanges the profile's refresh token for new tokens, updating auth
// in place. Fields missing from the response keep their current values, and
// last_refresh is stamped with the current UTC time.
func (c *Client) Refresh(ctx context.Context, auth *accounts.AuthFile) error {
	if auth.Tokens.RefreshToken == "" {
		return fmt.Errorf("profile has no refresh token")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&tokenRefreshRequest{
			ClientID:     clientID,
			GrantType:    "refresh_token",
			RefreshToken: auth.Tokens.RefreshToken,
			Scope:        "openid profile email",
		}).
		Post(c.TokenURL)
	if err != nil {
		return fmt.Errorf("token refresh request: %w", err)
	}

	if !resp.IsSuccessState() {
		if code := refreshErrorCode(resp.Bytes()); terminalRefreshCodes[code] {
			return fmt.Errorf("%s: %w", code, ErrReauthRequired)
		}
		return fmt.Errorf("token refresh failed: HTTP %d: %s", resp.GetStatusCode(), resp.String())
	}

	var refreshed tokenRefreshResponse
	if err := json.Unmarshal(resp.Bytes(), &refreshed); err != nil {
		return fmt.Errorf("parse token refresh response: %w", err)
	}

	if refreshed.AccessToken != "" {
		auth.Tokens.AccessToken = refreshed.AccessToken
	}
	if refreshed.IDToken != "" {
		auth.Tokens.IDToken = refreshed.IDToken
	}
	if refreshed.RefreshToken != "" {
		auth.Tokens.RefreshToken = refreshed.RefreshToken
	}
	auth.LastRefresh = time.Now().UTC().Format(time.RFC3339)
	return nil
}

// RefreshFile refreshes the profile stored at path and writes it back.
func (c *Client) RefreshFile(ctx context.Context, path string) (*accounts.AuthFile, error) {
	auth, err := accounts.LoadAuthFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Refresh(ctx, auth); err != nil {
		return nil, err
	}
	if err := auth.Save(path); err != nil {
		return nil, fmt.Errorf("write refreshed profile: %w", err)
	}
	return auth, nil
}

// The endpoint reports errors either as {"error":{"code":...}} or with a
// top-level "code" field.
func refreshErrorCode(body []byte) string {
	var payload struct {
		Code  string `json:"code"`
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != nil && payload.Error.Code != "" {
		return payload.Error.Code
	}
	return payload.Code
}
