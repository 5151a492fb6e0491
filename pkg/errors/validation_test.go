package errors

import (
	"strings"
	"testing"
)

func TestValidateRecordName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "pUC19", false},
		{"valid with dash", "my-plasmid", false},
		{"valid with underscore", "NC_001416", false},
		{"valid with dot", "NC_001416.1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"leading dot", ".hidden", true},
		{"path traversal ..", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"space", "foo bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecordName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateRecordName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "maps/pUC19.svg", false},
		{"absolute", "/etc/passwd", true},
		{"traversal", "maps/../secret", true},
		{"backslash", "maps\\x", true},
		{"control", "maps\x01", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
