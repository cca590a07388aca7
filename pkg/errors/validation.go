package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// childIDRegex matches child identifiers usable as rule targets.
var childIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// reservedIDs cannot name a child because rule targets use them.
var reservedIDs = map[string]bool{"parent": true, "true": true, "false": true}

// ValidateDocumentName validates a layout name for use in cache keys and
// output file names.
//
// Validation rules:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDocument, "layout name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidDocument, "layout name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "layout name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDocument, "layout name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateChildID validates the identifier of a child in a layout document.
func ValidateChildID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "child id cannot be empty")
	}
	if reservedIDs[strings.ToLower(id)] {
		return New(ErrCodeInvalidDocument, "child id %q is reserved", id)
	}
	if !childIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDocument, "invalid child id: %q", id)
	}
	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal and ensures reasonable path length.
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

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// cacheKeyRegex matches keys produced by the cache keyer.
var cacheKeyRegex = regexp.MustCompile(`^[a-z]+:[0-9a-f]{16,64}$`)

// ValidateCacheKey validates a layout key received from a client.
func ValidateCacheKey(key string) error {
	if !cacheKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid layout key: %q", key)
	}
	return nil
}
