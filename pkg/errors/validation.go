package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateDocName validates a document name used in cache keys, stored
// layout records, and derived output filenames.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDocName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDocument, "document name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDocument, "document name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "document name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDocument, "document name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFileStem validates an output filename stem for safety.
// It ensures the stem is a simple basename without path components.
func ValidateFileStem(stem string) error {
	if stem == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(stem, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	// No hidden files (starting with .)
	if strings.HasPrefix(stem, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a cache-relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
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

// ValidateBox validates node dimensions arriving from external input.
// The builder API rejects negative dimensions on its own, but NaN and
// infinity would sail through those comparisons and poison the layout
// arithmetic, so API and file boundaries run them through here first.
func ValidateBox(w, h float64) error {
	for _, v := range [2]float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "dimension must be finite, got %v", v)
		}
		if v < 0 {
			return New(ErrCodeInvalidInput, "dimension cannot be negative, got %v", v)
		}
	}
	return nil
}

// ValidateGaps validates layout spacing values from external input.
func ValidateGaps(vertical, horizontal float64) error {
	for _, v := range [2]float64{vertical, horizontal} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "gap must be finite, got %v", v)
		}
		if v < 0 {
			return New(ErrCodeInvalidInput, "gap cannot be negative, got %v", v)
		}
	}
	return nil
}

// styleNameRegex matches render style identifiers (lowercase, dashed).
var styleNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateStyleName validates a render style identifier.
func ValidateStyleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidStyle, "style name cannot be empty")
	}

	if !styleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidStyle, "invalid style name: %q", name)
	}

	return nil
}
