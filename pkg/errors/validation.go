package errors

import (
	"strings"
	"unicode"
)

// maxStopIDLength bounds identifiers before they are placed into a URL path.
// NaPTAN codes and hub IDs are well below this.
const maxStopIDLength = 64

// ValidateStopID checks a stop identifier taken from configuration before it
// is appended to the StopPoint base URL.
//
// Identifiers must be non-empty, contain no whitespace or control characters,
// and must not contain path or query syntax ("/", "\", "?", "#", "..").
func ValidateStopID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidStopID, "stop id cannot be empty")
	}
	if len(id) > maxStopIDLength {
		return New(ErrCodeInvalidStopID, "stop id too long (max %d characters)", maxStopIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidStopID, "stop id %q contains whitespace or control characters", id)
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "?", "#"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidStopID, "stop id %q contains invalid characters: %q", id, pattern)
		}
	}
	return nil
}
