package utils

import (
	"path/filepath"
	"strings"
)

// ContentTypeFor returns the Content-Type for an item name synced over WebDAV.
// Everything switchbox mirrors is text; JSON and TOML get their proper types so
// providers that index by type behave.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "application/json; charset=utf-8"
	case ".md", ".markdown":
		return "text/markdown; charset=utf-8"
	case ".toml":
		return "application/toml; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
