package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxDimension bounds the width and height of a generated level.
const MaxDimension = 4096

// ValidateDimensions checks that a requested level size is positive and not
// absurdly large.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidInput, "dimensions %dx%d exceed %d", width, height, MaxDimension)
	}
	return nil
}

// ValidatePath checks a blueprint path received from an untrusted source,
// such as the HTTP API. The path must be relative and stay inside its root.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot leave its root")
		}
	}
	return nil
}

// ValidateFormat checks name against the accepted formats.
func ValidateFormat(name string, accepted ...string) error {
	for _, a := range accepted {
		if name == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", name, strings.Join(accepted, ", "))
}
