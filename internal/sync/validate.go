package sync

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Validator checks downloaded content before it is committed to disk. Invalid
// content is recorded as an error and never written.
type Validator func(name string, data []byte) error

// ValidateJSON rejects content that does not parse as JSON. Used for account
// credential files, where a truncated or HTML error-page body must never
// replace a working profile.
func ValidateJSON(name string, data []byte) error {
	if !json.Valid(data) {
		return &ContentError{Name: name, Reason: "invalid JSON"}
	}
	return nil
}

// ValidateText rejects content that is not valid UTF-8. Prompts, skills and
// instruction files are plain text; anything else is a corrupt transfer.
func ValidateText(name string, data []byte) error {
	if !utf8.Valid(data) {
		return &ContentError{Name: name, Reason: "not valid UTF-8 text"}
	}
	return nil
}

// ContentError is a failed format validation of transferred content.
type ContentError struct {
	Name   string
	Reason string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("sync: %s: %s", e.Name, e.Reason)
}
