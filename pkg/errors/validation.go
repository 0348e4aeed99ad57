package errors

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// MaxLabelLength bounds entry names so labels stay renderable.
const MaxLabelLength = 256

// ValidateColor checks that s is a hex colour ("#rgb" or "#rrggbb") or an
// SVG colour keyword such as "black".
func ValidateColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if _, ok := colornames.Map[strings.ToLower(s)]; ok {
		return nil
	}
	if !strings.HasPrefix(s, "#") {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rrggbb or an SVG color name)", s)
	}
	if _, err := colorful.Hex(s); err != nil {
		return Wrap(ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return nil
}

// ValidateLabel validates an entry name used as label text.
//
// The rules are conservative:
//   - No empty names
//   - No control characters (newlines would break single-line labels)
//   - Maximum length of MaxLabelLength characters
func ValidateLabel(name string) error {
	if name == "" {
		return New(ErrCodeInvalidEntry, "entry name cannot be empty")
	}
	if len(name) > MaxLabelLength {
		return New(ErrCodeInvalidEntry, "entry name too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEntry, "entry name %q contains control characters", name)
		}
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path %q is a directory", path)
	}
	return nil
}
