package webdav

import (
	"net/url"
	"strings"
)

// RemoteEntry is one child of a listed collection.
type RemoteEntry struct {
	Name         string
	IsCollection bool
}

// Servers disagree about whether collection hrefs carry a trailing slash, so
// the classifier also scans a bounded window after the href for a
// <collection/> resource-type marker. The window is a heuristic; matching the
// marker of a later sibling is possible in principle but has not been seen on
// real servers.
const collectionLookahead = 500

var hrefTags = []struct{ open, close string }{
	{"<d:href>", "</d:href>"},
	{"<D:href>", "</D:href>"},
	{"<href>", "</href>"},
}

var collectionMarkers = []string{"<d:collection", "<D:collection", "<collection"}

// ParseMultistatus extracts child entries from a depth-1 PROPFIND response
// body. It deliberately scans for href text patterns instead of parsing XML:
// the tolerant behavior (namespace-prefix indifference, malformed markup)
// matters more than strictness across the zoo of WebDAV providers.
//
// The first href per listing is the queried collection itself and is skipped.
// Hidden entries (leading dot) and empty names are dropped, and names are
// deduplicated while preserving order.
func ParseMultistatus(body string) []RemoteEntry {
	var entries []RemoteEntry
	seen := make(map[string]bool)

	for _, tag := range hrefTags {
		pos := 0
		first := true
		for {
			i := strings.Index(body[pos:], tag.open)
			if i < 0 {
				break
			}
			start := pos + i + len(tag.open)
			j := strings.Index(body[start:], tag.close)
			if j < 0 {
				break
			}
			href := body[start : start+j]
			pos = start + j

			decoded, err := url.PathUnescape(href)
			if err != nil {
				decoded = href
			}

			// Depth-1 PROPFIND echoes the queried collection as its first
			// response element.
			if first {
				first = false
				continue
			}

			name := lastSegment(decoded)
			if name == "" || strings.HasPrefix(name, ".") {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true

			entries = append(entries, RemoteEntry{
				Name:         name,
				IsCollection: strings.HasSuffix(decoded, "/") || hasCollectionMarker(body, start),
			})
		}
	}

	return entries
}

func lastSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func hasCollectionMarker(body string, from int) bool {
	end := from + collectionLookahead
	if end > len(body) {
		end = len(body)
	}
	window := body[from:end]
	for _, marker := range collectionMarkers {
		if strings.Contains(window, marker) {
			return true
		}
	}
	return false
}
