package errors

import (
	"strings"
	"unicode"
)

// ValidateDimensions checks a requested maze size against an upper bound.
// Both dimensions must be at least 1 and at most limit.
func ValidateDimensions(width, height, limit int) error {
	if width < 1 || height < 1 {
		return New(ErrCodeInvalidDimensions, "dimensions must be positive, got %dx%d", width, height)
	}
	if width > limit || height > limit {
		return New(ErrCodeInvalidDimensions, "dimensions %dx%d exceed maximum %d", width, height, limit)
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateID validates a record identifier used as a file name or a URL
// segment. It rejects anything that could escape the storage directory.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "id contains invalid characters: %q", pattern)
		}
	}
	return nil
}
