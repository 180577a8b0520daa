package storage

import "fmt"

// FileValidationError is returned when an upload fails a ValidationRule.
type FileValidationError struct {
	Details map[string]any
	Code    string
	Message string
}

func (e *FileValidationError) Error() string {
	return e.Message
}

// Error codes for FileValidationError.
const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeFileTooSmall = "file_too_small"
	ErrCodeInvalidMIME  = "invalid_mime"
	ErrCodeEmptyFile    = "empty_file"
)

// ValidationRule checks an upload's size and sniffed content type.
type ValidationRule interface {
	Validate(size int64, mimeType string) error
}

// ValidationFunc adapts a function to ValidationRule.
type ValidationFunc func(size int64, mimeType string) error

func (f ValidationFunc) Validate(size int64, mimeType string) error {
	return f(size, mimeType)
}

// ValidateReader runs rules in order and returns the first failure.
func ValidateReader(size int64, mimeType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if err := rule.Validate(size, mimeType); err != nil {
			return err
		}
	}
	return nil
}

// MaxSize rejects uploads larger than limit bytes.
func MaxSize(limit int64) ValidationRule {
	return ValidationFunc(func(size int64, _ string) error {
		if size > limit {
			return &FileValidationError{
				Code:    ErrCodeFileTooLarge,
				Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, limit),
				Details: map[string]any{"limit": limit, "got": size},
			}
		}
		return nil
	})
}

// MinSize rejects uploads smaller than minimum bytes.
func MinSize(minimum int64) ValidationRule {
	return ValidationFunc(func(size int64, _ string) error {
		if size < minimum {
			return &FileValidationError{
				Code:    ErrCodeFileTooSmall,
				Message: fmt.Sprintf("file size %d is below minimum of %d bytes", size, minimum),
				Details: map[string]any{"minimum": minimum, "got": size},
			}
		}
		return nil
	})
}

// NotEmpty rejects zero-byte uploads.
func NotEmpty() ValidationRule {
	return ValidationFunc(func(size int64, _ string) error {
		if size <= 0 {
			return &FileValidationError{
				Code:    ErrCodeEmptyFile,
				Message: "file is empty",
				Details: map[string]any{},
			}
		}
		return nil
	})
}

// AllowedTypes accepts only content types matching patterns such as
// "application/pdf" or "image/*".
func AllowedTypes(patterns ...string) ValidationRule {
	return ValidationFunc(func(_ int64, mimeType string) error {
		if !matchesMIME(mimeType, patterns) {
			return &FileValidationError{
				Code:    ErrCodeInvalidMIME,
				Message: fmt.Sprintf("file type %q is not allowed", mimeType),
				Details: map[string]any{"type": mimeType, "allowed": patterns},
			}
		}
		return nil
	})
}

// ImageOnly is AllowedTypes("image/*").
func ImageOnly() ValidationRule {
	return AllowedTypes("image/*")
}

// DocumentsOnly accepts office documents, PDF, RTF and plain text.
func DocumentsOnly() ValidationRule {
	return AllowedTypes(documentTypes...)
}
