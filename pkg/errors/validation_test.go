package errors

import (
	"strings"
	"testing"
)

func TestValidateStopID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"naptan code", "490005432S2", false},
		{"hub id", "HUBVIC", false},
		{"tube station", "940GZZLUOXC", false},

		{"empty", "", true},
		{"too long", strings.Repeat("A", 65), true},
		{"slash", "490005432S2/Arrivals", true},
		{"path traversal", "..", true},
		{"query", "490005432S2?foo=bar", true},
		{"fragment", "490005432S2#x", true},
		{"backslash", "foo\\bar", true},
		{"space", "4900 05432S2", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStopID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStopID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStopID) {
				t.Errorf("ValidateStopID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidStopID)
			}
		})
	}
}
