package webdav

import (
	"net/url"
	"strings"
)

// Endpoint identifies one remote collection plus the credentials to reach it.
// Derived child endpoints are new values; an Endpoint is never mutated after
// construction.
type Endpoint struct {
	BaseURL    string `json:"url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	RemotePath string `json:"remote_path"`
}

// Child returns the endpoint for the sub-collection name under e.
func (e Endpoint) Child(name string) Endpoint {
	child := e
	child.RemotePath = NormalizePath(e.RemotePath) + name + "/"
	return child
}

// CollectionURL is the full URL of the endpoint's collection, with a trailing
// slash.
func (e Endpoint) CollectionURL() string {
	return strings.TrimSuffix(strings.TrimSpace(e.BaseURL), "/") + NormalizePath(e.RemotePath)
}

// ItemURL is the full URL of an item inside the collection. The name is
// percent-encoded so non-ASCII names and spaces round-trip.
func (e Endpoint) ItemURL(name string) string {
	return e.CollectionURL() + url.PathEscape(name)
}

// NormalizePath trims whitespace and guarantees exactly one leading and one
// trailing slash. Idempotent.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
