package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/switchbox-dev/switchbox/internal/utils"
)

// Prompt is one reusable prompt file, with its frontmatter metadata.
type Prompt struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ArgumentHint string `json:"argumentHint,omitempty"`
	Path         string `json:"filePath"`
	Content      string `json:"content"`
}

// ScanPrompts walks the prompts directory recursively and lists every .md
// file. Unreadable files are skipped. A missing directory is an empty list.
func (l Layout) ScanPrompts() ([]Prompt, error) {
	dir := l.PromptsDir()
	if !utils.DirExists(dir) {
		return []Prompt{}, nil
	}

	prompts := []Prompt{}
	err := filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil || de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		content := string(data)
		fm := ParseFrontmatter(content)
		prompts = append(prompts, Prompt{
			Name:         strings.TrimSuffix(de.Name(), ".md"),
			Description:  fm.String("description"),
			ArgumentHint: fm.String("argument-hint"),
			Path:         path,
			Content:      content,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan prompts: %w", err)
	}
	return prompts, nil
}

// CreatePrompt writes a new prompt file with a description frontmatter block
// and returns its path.
func (l Layout) CreatePrompt(name, description, content string) (string, error) {
	if err := utils.EnsureDir(l.PromptsDir()); err != nil {
		return "", err
	}

	path := filepath.Join(l.PromptsDir(), name+".md")
	if utils.FileExists(path) {
		return "", fmt.Errorf("prompt %q already exists", name)
	}

	full := fmt.Sprintf("---\ndescription: %s\n---\n\n%s", description, content)
	if err := os.WriteFile(path, []byte(full), 0o644); err != nil {
		return "", fmt.Errorf("create prompt: %w", err)
	}
	return path, nil
}

func (l Layout) DeletePrompt(path string) error {
	return os.Remove(path)
}
