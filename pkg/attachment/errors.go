package attachment

import "errors"

// Errors returned by the multipart adapters. Binding itself never fails.
var (
	ErrFileTooLarge = errors.New("attachment: uploaded file exceeds size limit")
	ErrReadFile     = errors.New("attachment: failed to read uploaded file")
)
