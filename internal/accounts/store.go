package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/switchbox-dev/switchbox/internal/utils"
)

// Account is one credential profile as shown to the user.
type Account struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PlanType        string `json:"planType"`
	SubscriptionEnd string `json:"subscriptionEnd,omitempty"`
	Active          bool   `json:"isActive"`
	Path            string `json:"filePath"`
	UpdatedAt       int64  `json:"authUpdatedAt"` // file mtime, unix ms
	ExpiresAt       int64  `json:"expiresAt,omitempty"`
	LastRefresh     string `json:"lastRefresh"`
}

// ScanResult is the profile listing plus the directory it came from.
type ScanResult struct {
	Accounts []Account `json:"accounts"`
	Dir      string    `json:"accountsDir"`
}

// Store manages named credential profiles in a directory and the single
// "active" auth file the external CLI tool reads.
type Store struct {
	dir        string
	activePath string
}

func NewStore(dir, activePath string) *Store {
	return &Store{dir: dir, activePath: activePath}
}

func (s *Store) Dir() string { return s.dir }

// ActivePath is the auth file the external tool reads; switching copies a
// profile over it.
func (s *Store) ActivePath() string { return s.activePath }

// Scan lists all .json profiles in the store directory, marking the one whose
// account id matches the currently active auth file. Unparsable profiles are
// skipped, not fatal.
func (s *Store) Scan() (*ScanResult, error) {
	if err := utils.EnsureDir(s.dir); err != nil {
		return nil, fmt.Errorf("create accounts directory: %w", err)
	}

	var activeID string
	if active, err := LoadAuthFile(s.activePath); err == nil {
		activeID = active.Tokens.AccountID
	}

	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Accounts: []Account{}, Dir: s.dir}
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, de.Name())

		// The active auth mirror must not show up as a separate profile.
		if utils.SamePath(path, s.activePath) {
			continue
		}

		auth, err := LoadAuthFile(path)
		if err != nil {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("stat profile %q: %w", path, err)
		}

		id := InspectAuth(auth)
		result.Accounts = append(result.Accounts, Account{
			ID:              auth.Tokens.AccountID,
			Name:            strings.TrimSuffix(de.Name(), ".json"),
			Email:           id.Email,
			PlanType:        id.PlanType,
			SubscriptionEnd: id.SubscriptionEnd,
			Active:          activeID != "" && activeID == auth.Tokens.AccountID,
			Path:            path,
			UpdatedAt:       info.ModTime().UnixMilli(),
			ExpiresAt:       id.ExpiresAt,
			LastRefresh:     auth.LastRefresh,
		})
	}

	return result, nil
}

// Switch makes the profile at path the active credential set by copying it
// over the active auth file.
func (s *Store) Switch(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	if err := utils.EnsureParent(s.activePath); err != nil {
		return err
	}
	return os.WriteFile(s.activePath, data, 0o600)
}

// Add stores validated profile content under name. An empty name falls back
// to the token's email, then to a timestamped placeholder.
func (s *Store) Add(name string, content []byte) (string, error) {
	auth, err := ParseAuthFile(content)
	if err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		if id := InspectAuth(auth); id.Email != unknownEmail {
			name = id.Email
		} else {
			name = fmt.Sprintf("account_%d", time.Now().Unix())
		}
	}

	if err := utils.EnsureDir(s.dir); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name+".json")
	if utils.FileExists(path) {
		return "", fmt.Errorf("account %q already exists", name)
	}
	if err := auth.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// Rename renames the profile at path to newName within the same directory.
func (s *Store) Rename(path, newName string) (string, error) {
	if !utils.FileExists(path) {
		return "", fmt.Errorf("profile %q does not exist", path)
	}
	target := filepath.Join(filepath.Dir(path), newName+".json")
	if utils.FileExists(target) {
		return "", fmt.Errorf("account %q already exists", newName)
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

func (s *Store) Delete(path string) error {
	if !utils.FileExists(path) {
		return fmt.Errorf("profile %q does not exist", path)
	}
	return os.Remove(path)
}

// Read returns the profile content pretty-printed.
func (s *Store) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parse profile %q: %w", path, err)
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}

// Update replaces an existing profile with validated content.
func (s *Store) Update(path string, content []byte) error {
	if !utils.FileExists(path) {
		return fmt.Errorf("profile %q does not exist", path)
	}
	auth, err := ParseAuthFile(content)
	if err != nil {
		return err
	}
	return auth.Save(path)
}

// ImportDefault seeds the store from the active auth file when no profiles
// exist yet. Returns true when a profile was imported.
func (s *Store) ImportDefault() (bool, error) {
	if !utils.FileExists(s.activePath) {
		return false, nil
	}

	if utils.DirExists(s.dir) {
		dirents, err := os.ReadDir(s.dir)
		if err != nil {
			return false, err
		}
		for _, de := range dirents {
			if !de.IsDir() && strings.HasSuffix(de.Name(), ".json") {
				return false, nil
			}
		}
	} else if err := utils.EnsureDir(s.dir); err != nil {
		return false, err
	}

	target := filepath.Join(s.dir, "default.json")
	if utils.FileExists(target) {
		return false, nil
	}

	data, err := os.ReadFile(s.activePath)
	if err != nil {
		return false, fmt.Errorf("copy default account: %w", err)
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return false, fmt.Errorf("copy default account: %w", err)
	}
	return true, nil
}
