package accounts

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeIDToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func authWithToken(token string) *AuthFile {
	return &AuthFile{
		LastRefresh: "2026-01-01T00:00:00Z",
		Tokens: Tokens{
			AccountID: "acc-1",
			IDToken:   token,
		},
	}
}

func TestInspectAuth(t *testing.T) {
	token := makeIDToken(t, map[string]any{
		"email": "alice@example.com",
		"exp":   1893456000,
		"https://api.openai.com/auth": map[string]any{
			"chatgpt_plan_type":                 "pro",
			"chatgpt_subscription_active_until": "2026-12-31T00:00:00Z",
		},
	})

	id := InspectAuth(authWithToken(token))
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, "pro", id.PlanType)
	assert.Equal(t, "2026-12-31T00:00:00Z", id.SubscriptionEnd)
	assert.Equal(t, int64(1893456000), id.ExpiresAt)
}

func TestInspectAuth_MissingProviderClaims(t *testing.T) {
	token := makeIDToken(t, map[string]any{"email": "bob@example.com"})

	id := InspectAuth(authWithToken(token))
	assert.Equal(t, "bob@example.com", id.Email)
	assert.Equal(t, "unknown", id.PlanType)
	assert.Empty(t, id.SubscriptionEnd)
	assert.Zero(t, id.ExpiresAt)
}

func TestInspectAuth_MalformedTokenDegrades(t *testing.T) {
	for _, token := range []string{"", "not-a-jwt", "a.b", "x.y.z"} {
		id := InspectAuth(authWithToken(token))
		assert.Equal(t, "Unknown", id.Email, "token %q", token)
		assert.Equal(t, "unknown", id.PlanType, "token %q", token)
	}
}
