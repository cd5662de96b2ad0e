package errors

import (
	"strings"
	"unicode"
)

// maxCorpusIDLen bounds corpus identifiers accepted at the edges (CLI, HTTP).
const maxCorpusIDLen = 256

// ValidateCorpusID checks that a corpus identifier can be used safely as a
// single URL path segment or storage key.
//
// Identifiers are otherwise opaque: any name accepted here is looked up as is.
func ValidateCorpusID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCorpus, "corpus identifier cannot be empty")
	}
	if len(id) > maxCorpusIDLen {
		return New(ErrCodeInvalidCorpus, "corpus identifier too long (max %d characters)", maxCorpusIDLen)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCorpus, "corpus identifier contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidCorpus, "corpus identifier contains invalid characters: %q", pattern)
		}
	}
	return nil
}
