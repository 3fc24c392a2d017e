package authapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/switchbox-dev/switchbox/internal/accounts"
)

// RateLimitWindow is one usage window in display form.
type RateLimitWindow struct {
	UsedPercent   float64 `json:"usedPercent"`
	WindowMinutes *int64  `json:"windowMinutes,omitempty"`
	ResetsAt      *int64  `json:"resetsAt,omitempty"` // unix seconds
}

// Usage is the quota summary for one account.
type Usage struct {
	PrimaryWindow   *RateLimitWindow `json:"primaryWindow,omitempty"`
	SecondaryWindow *RateLimitWindow `json:"secondaryWindow,omitempty"`
	PlanType        string           `json:"planType,omitempty"`
}

type usageAPIWindow struct {
	UsedPercent        float64 `json:"used_percent"`
	LimitWindowSeconds *int64  `json:"limit_window_seconds"`
	ResetAt            *int64  `json:"reset_at"`
}

type usageAPIResponse struct {
	RateLimit *struct {
		PrimaryWindow   *usageAPIWindow `json:"primary_window"`
		SecondaryWindow *usageAPIWindow `json:"secondary_window"`
	} `json:"rate_limit"`
	PlanType string `json:"plan_type"`
}

// FetchUsage queries the usage endpoints with the profile's access token.
// Each URL in UsageURLs is tried in order; the first success is parsed and
// the rest are skipped. When every attempt fails the error lists them all.
func (c *Client) FetchUsage(ctx context.Context, auth *accounts.AuthFile) (*Usage, error) {
	if auth.Tokens.AccessToken == "" {
		return nil, fmt.Errorf("profile has no access token")
	}

	var attempts []string
	for _, url := range c.UsageURLs {
		r := c.http.R().
			SetContext(ctx).
			SetBearerAuthToken(auth.Tokens.AccessToken).
			SetHeader("User-Agent", browserUserAgent).
			SetHeader("Origin", originHeader)
		if auth.Tokens.AccountID != "" {
			r.SetHeader("ChatGPT-Account-Id", auth.Tokens.AccountID)
		}

		resp, err := r.Get(url)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", url, err))
			continue
		}
		if !resp.IsSuccessState() {
			attempts = append(attempts, fmt.Sprintf("%s: HTTP %d", url, resp.GetStatusCode()))
			continue
		}

		var api usageAPIResponse
		if err := json.Unmarshal(resp.Bytes(), &api); err != nil {
			return nil, fmt.Errorf("parse usage response from %s: %w", url, err)
		}
		return mapUsage(api), nil
	}

	return nil, fmt.Errorf("usage query failed on all endpoints: %s", strings.Join(attempts, "; "))
}

func mapUsage(api usageAPIResponse) *Usage {
	u := &Usage{PlanType: api.PlanType}
	if api.RateLimit != nil {
		u.PrimaryWindow = mapWindow(api.RateLimit.PrimaryWindow)
		u.SecondaryWindow = mapWindow(api.RateLimit.SecondaryWindow)
	}
	return u
}

func mapWindow(w *usageAPIWindow) *RateLimitWindow {
	if w == nil {
		return nil
	}
	out := &RateLimitWindow{UsedPercent: w.UsedPercent, ResetsAt: w.ResetAt}
	if w.LimitWindowSeconds != nil {
		minutes := (*w.LimitWindowSeconds + 59) / 60
		out.WindowMinutes = &minutes
	}
	return out
}
