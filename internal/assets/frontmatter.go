package assets

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML block between the leading "---" markers of a
// markdown file. Missing or malformed blocks parse to nil; asset listings
// must never fail on a file with odd metadata.
type Frontmatter map[string]any

// ParseFrontmatter extracts the frontmatter from content, or nil when there
// is none.
func ParseFrontmatter(content string) Frontmatter {
	trimmed := strings.TrimLeft(content, "\uFEFF \t\r\n")
	rest, found := strings.CutPrefix(trimmed, "---")
	if !found {
		return nil
	}
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return nil
	}
	if len(fm) == 0 {
		return nil
	}
	return fm
}

// String returns the value for key rendered as a string, or "" when absent.
func (f Frontmatter) String(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}
