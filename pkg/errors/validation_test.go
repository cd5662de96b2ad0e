package errors

import (
	"strings"
	"testing"
)

func TestValidateCorpusID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"filename", "promessi_sposi.txt", false},
		{"plain", "alice", false},
		{"unicode", "gridò", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"control", "a\x00b", true},
		{"newline", "a\nb", true},
		{"too long", strings.Repeat("x", 257), true},
		{"max length", strings.Repeat("x", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCorpusID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCorpusID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCorpus) {
				t.Errorf("expected INVALID_CORPUS code, got %v", GetCode(err))
			}
		})
	}
}
