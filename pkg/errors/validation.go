package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength bounds complex and molecule names.
const MaxNameLength = 256

// MaxDocumentSize bounds the raw document text accepted by the importer (bytes).
const MaxDocumentSize = 64 << 20

// ValidateName validates a complex or molecule name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of [MaxNameLength] bytes
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s name contains invalid control characters", kind)
		}
	}
	return nil
}

// ValidateDocument checks that raw document text is non-empty and within
// [MaxDocumentSize].
func ValidateDocument(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "document is empty")
	}
	if len(text) > MaxDocumentSize {
		return New(ErrCodeInvalidInput, "document too large (max %d bytes)", MaxDocumentSize)
	}
	return nil
}
