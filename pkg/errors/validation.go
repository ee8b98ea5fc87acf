package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// linkDelimiters cannot appear in a passage name that other passages are
// expected to link to: the link scanner would split the name.
var linkDelimiters = []string{"[[", "]]", "]["}

// ValidateLinkTarget reports whether name can be written as the target of a
// [[link]]. The story core treats names as opaque and never calls this; it is
// for editors that want to warn before a rename produces unreachable links.
func ValidateLinkTarget(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "passage name cannot be empty")
	}

	for _, r := range name {
		if r == '\n' || r == '\r' {
			return New(ErrCodeInvalidName, "passage name cannot contain line breaks")
		}
		if unicode.IsControl(r) && r != '\t' {
			return New(ErrCodeInvalidName, "passage name contains invalid control characters")
		}
	}

	for _, d := range linkDelimiters {
		if strings.Contains(name, d) {
			return New(ErrCodeInvalidName, "passage name contains link delimiter %q", d)
		}
	}

	return nil
}

// ValidateStoryPath validates a story file path given on the command line.
// Story files are JSON documents.
func ValidateStoryPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "story path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "story path contains invalid characters")
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return New(ErrCodeInvalidPath, "story file must be a .json file, got %q", filepath.Base(path))
	}

	return nil
}
