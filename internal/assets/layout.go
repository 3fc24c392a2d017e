// Package assets manages the CLI tool's local asset tree: prompt files,
// skill directories, the agent instructions file, and config.toml.
package assets

import (
	"path/filepath"

	"github.com/switchbox-dev/switchbox/internal/sync"
	"github.com/switchbox-dev/switchbox/internal/utils"
)

const (
	promptsDirName = "prompts"
	skillsDirName  = "skills"
	agentsFileName = "AGENTS.MD"
	configFileName = "config.toml"
)

// Layout locates the asset tree under a single root directory.
type Layout struct {
	Root string
}

// DefaultLayout points at the tool's standard home directory.
func DefaultLayout() (Layout, error) {
	root, err := utils.ResolvePath("~/.codex")
	if err != nil {
		return Layout{}, err
	}
	return Layout{Root: root}, nil
}

func (l Layout) PromptsDir() string { return filepath.Join(l.Root, promptsDirName) }
func (l Layout) SkillsDir() string  { return filepath.Join(l.Root, skillsDirName) }
func (l Layout) AgentsFile() string { return filepath.Join(l.Root, agentsFileName) }
func (l Layout) ConfigFile() string { return filepath.Join(l.Root, configFileName) }

// SyncPaths adapts the layout for the sync engine.
func (l Layout) SyncPaths() sync.AssetPaths {
	return sync.AssetPaths{
		Root:       l.Root,
		PromptsDir: l.PromptsDir(),
		SkillsDir:  l.SkillsDir(),
		AgentsFile: l.AgentsFile(),
		ConfigFile: l.ConfigFile(),
	}
}
