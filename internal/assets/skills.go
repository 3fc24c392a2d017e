package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/switchbox-dev/switchbox/internal/utils"
)

const skillFileName = "SKILL.md"

// Skill is one skill directory, described by its SKILL.md frontmatter.
type Skill struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Compatibility string `json:"compatibility,omitempty"`
	Dir           string `json:"dirPath"`
	HasScripts    bool   `json:"hasScripts"`
	HasAssets     bool   `json:"hasAssets"`
	HasReferences bool   `json:"hasReferences"`
}

// ScanSkills lists the immediate child directories of the skills directory
// that contain a SKILL.md. Hidden directories and the tool's own "dist"
// output are skipped.
func (l Layout) ScanSkills() ([]Skill, error) {
	dir := l.SkillsDir()
	if !utils.DirExists(dir) {
		return []Skill{}, nil
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan skills: %w", err)
	}

	skills := []Skill{}
	for _, de := range dirents {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") || de.Name() == "dist" {
			continue
		}

		skillDir := filepath.Join(dir, de.Name())
		data, err := os.ReadFile(filepath.Join(skillDir, skillFileName))
		if err != nil {
			continue
		}

		fm := ParseFrontmatter(string(data))
		name := fm.String("name")
		if name == "" {
			name = de.Name()
		}

		skills = append(skills, Skill{
			Name:          name,
			Description:   fm.String("description"),
			Compatibility: fm.String("compatibility"),
			Dir:           skillDir,
			HasScripts:    utils.DirExists(filepath.Join(skillDir, "scripts")),
			HasAssets:     utils.DirExists(filepath.Join(skillDir, "assets")),
			HasReferences: utils.DirExists(filepath.Join(skillDir, "references")),
		})
	}
	return skills, nil
}

// CreateSkill scaffolds a new skill directory with a templated SKILL.md and
// returns the directory path.
func (l Layout) CreateSkill(name, description string) (string, error) {
	skillDir := filepath.Join(l.SkillsDir(), name)
	if utils.DirExists(skillDir) {
		return "", fmt.Errorf("skill %q already exists", name)
	}
	if err := utils.EnsureDir(skillDir); err != nil {
		return "", err
	}

	content := fmt.Sprintf(
		"---\nname: %s\ndescription: %s\n---\n\n# %s\n\n## When to Use\n\n## Workflow\n",
		name, description, name,
	)
	if err := os.WriteFile(filepath.Join(skillDir, skillFileName), []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("create skill: %w", err)
	}
	return skillDir, nil
}

// ReadSkill returns the SKILL.md content of the skill at dir.
func (l Layout) ReadSkill(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, skillFileName))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveSkill replaces the SKILL.md content of the skill at dir.
func (l Layout) SaveSkill(dir, content string) error {
	return os.WriteFile(filepath.Join(dir, skillFileName), []byte(content), 0o644)
}

// DeleteSkill removes the whole skill directory.
func (l Layout) DeleteSkill(dir string) error {
	return os.RemoveAll(dir)
}
