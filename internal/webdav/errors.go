package webdav

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("webdav: not found")
	ErrUnauthorized = errors.New("webdav: authentication failed")
)

// TransportError wraps connection-level failures (dial, timeout, TLS).
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("webdav: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-success HTTP status from the server.
type StatusError struct {
	Op     string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webdav: %s %s: HTTP %d", e.Op, e.URL, e.Status)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// IsNotFound reports whether err is a 404 from the server. Callers probing a
// collection that does not exist yet treat this as an empty listing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
