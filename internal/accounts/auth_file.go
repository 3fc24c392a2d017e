package accounts

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/switchbox-dev/switchbox/internal/utils"
)

// Tokens is the OAuth token set inside a credential profile.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	AccountID    string `json:"account_id"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthFile is the on-disk credential profile format, shared with the CLI tool
// whose active auth file switchbox manages.
type AuthFile struct {
	APIKey      *string `json:"OPENAI_API_KEY"`
	LastRefresh string  `json:"last_refresh"`
	Tokens      Tokens  `json:"tokens"`
}

func LoadAuthFile(path string) (*AuthFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var auth AuthFile
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, fmt.Errorf("parse auth file %q: %w", path, err)
	}
	return &auth, nil
}

// ParseAuthFile validates raw profile content.
func ParseAuthFile(content []byte) (*AuthFile, error) {
	var auth AuthFile
	if err := json.Unmarshal(content, &auth); err != nil {
		return nil, fmt.Errorf("invalid auth file content: %w", err)
	}
	return &auth, nil
}

// Save writes the profile pretty-printed, creating parent directories as
// needed.
func (a *AuthFile) Save(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := utils.EnsureParent(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
