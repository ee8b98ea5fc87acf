package errors

import (
	"testing"
)

func TestValidateLinkTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Start", false},
		{"spaces", "The Dark Forest", false},
		{"arrow", "left->right", false},
		{"pipe", "a|b", false},
		{"tab", "a\tb", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
		{"control char", "foo\x01bar", true},
		{"closing brackets", "foo]]bar", true},
		{"opening brackets", "foo[[bar", true},
		{"setter divider", "foo][bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLinkTarget(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLinkTarget(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateLinkTarget(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateStoryPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "story.json", false},
		{"nested", "stories/dark/forest.json", false},
		{"upper ext", "STORY.JSON", false},

		{"empty", "", true},
		{"no ext", "story", true},
		{"html", "story.html", true},
		{"null byte", "sto\x00ry.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoryPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStoryPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
