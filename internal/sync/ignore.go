package sync

import (
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Cache and editor artifacts that must never reach the remote mirror, on top
// of the hard rule that dot- and dunder-prefixed names are always skipped.
var defaultIgnoreLines = []string{
	"__pycache__/",
	"*.py[cod]",
	"node_modules/",
	"dist/",
	"Thumbs.db",
	"*.swp",
	"*.tmp",
}

type IgnoreList struct {
	ignore *gitignore.GitIgnore
}

func NewIgnoreList() *IgnoreList {
	return &IgnoreList{ignore: gitignore.CompileIgnoreLines(defaultIgnoreLines...)}
}

// ShouldIgnore reports whether a local entry is excluded from upload.
func (l *IgnoreList) ShouldIgnore(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") {
		return true
	}
	return l.ignore.MatchesPath(name)
}
