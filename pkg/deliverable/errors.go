package deliverable

import "errors"

var (
	ErrNoSubmission = errors.New("deliverable: submission is required")
	ErrNoRecipient  = errors.New("deliverable: no recipient email")
	ErrMissingFiles = errors.New("deliverable: declared attachments have no uploaded file")
	ErrUploadFailed = errors.New("deliverable: attachment upload failed")
	ErrRenderFailed = errors.New("deliverable: failed to render email")
	ErrSendFailed   = errors.New("deliverable: failed to send email")
)
