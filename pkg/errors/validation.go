package errors

import (
	"strings"
	"unicode"
)

// ValidateItemName validates a radar item name.
// The name doubles as the determinism seed source for layout, so an empty
// or unprintable name would silently collapse placements.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateItemName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidItem, "item name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidItem, "item name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item name contains invalid control characters")
		}
	}

	return nil
}

// ValidateLabel validates a category or ring label from configuration.
// Labels must survive key normalization (lowercasing, stripping everything
// but letters and digits) without becoming empty.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidConfig, "label cannot be empty")
	}

	hasAlnum := false
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "label contains invalid control characters: %q", label)
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasAlnum = true
		}
	}
	if !hasAlnum {
		return New(ErrCodeInvalidConfig, "label must contain at least one letter or digit: %q", label)
	}

	return nil
}

// ValidateSourcePath validates a local item-source path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidSource, "source path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidSource, "source path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "source path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
