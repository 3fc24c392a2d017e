package accounts

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	unknownEmail = "Unknown"
	unknownPlan  = "unknown"
)

// Display-only claims inside the identity token. Signatures are never
// verified here; the token is only inspected to label profiles in lists.
type idTokenClaims struct {
	Email  string         `json:"email"`
	OpenAI providerClaims `json:"https://api.openai.com/auth"`
	jwt.RegisteredClaims
}

type providerClaims struct {
	PlanType                string `json:"chatgpt_plan_type"`
	SubscriptionActiveUntil string `json:"chatgpt_subscription_active_until"`
}

// Identity summarizes what a profile's id token says about its owner.
type Identity struct {
	Email           string
	PlanType        string
	SubscriptionEnd string // empty when the plan has no fixed end
	ExpiresAt       int64  // token expiry, unix seconds; 0 when absent
}

// InspectAuth extracts display fields from a profile's id token. Malformed
// tokens degrade to the unknown placeholders rather than failing: a profile
// with a broken token is still listed and switchable.
func InspectAuth(auth *AuthFile) Identity {
	id := Identity{Email: unknownEmail, PlanType: unknownPlan}

	var claims idTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(auth.Tokens.IDToken, &claims); err != nil {
		return id
	}

	if claims.Email != "" {
		id.Email = claims.Email
	}
	if claims.OpenAI.PlanType != "" {
		id.PlanType = claims.OpenAI.PlanType
	}
	id.SubscriptionEnd = claims.OpenAI.SubscriptionActiveUntil
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return id
}
