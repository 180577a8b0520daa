package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/deliverkit"
	"github.com/dmitrymomot/deliverkit/pkg/attachment"
	"github.com/dmitrymomot/deliverkit/pkg/deliverable"
	"github.com/dmitrymomot/deliverkit/pkg/mailer"
	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeMalformedRequest = "malformed_request"
	CodeBodyTooLarge     = "body_too_large"
	CodeNoRecipient      = "no_recipient"
	CodeMissingFiles     = "missing_files"
	CodeTemplateError    = "template_error"
	CodeUploadFailed     = "upload_failed"
	CodeSendFailed       = "send_failed"
)

// mapError converts package errors to HTTP errors. Unknown errors are
// returned unchanged and end up as 500.
func mapError(err error) error {
	if err == nil || deliverkit.AsHTTPError(err) != nil {
		return err
	}
	cause := deliverkit.WithErrorCause(err)

	var maxBytes *http.MaxBytesError
	var invalid *storage.FileValidationError

	switch {
	case errors.As(err, &maxBytes):
		return deliverkit.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large",
			deliverkit.WithErrorCode(CodeBodyTooLarge), cause)
	case errors.Is(err, attachment.ErrFileTooLarge):
		return deliverkit.NewHTTPError(http.StatusRequestEntityTooLarge, "uploaded file too large",
			deliverkit.WithErrorCode(storage.ErrCodeFileTooLarge), cause)
	case errors.Is(err, attachment.ErrReadFile):
		return deliverkit.NewHTTPError(http.StatusBadRequest, "malformed multipart body",
			deliverkit.WithErrorCode(CodeMalformedRequest), cause)
	case errors.Is(err, deliverable.ErrNoSubmission):
		return deliverkit.NewHTTPError(http.StatusBadRequest, "submission is required",
			deliverkit.WithErrorCode(CodeMalformedRequest), cause)
	case errors.Is(err, deliverable.ErrNoRecipient):
		return deliverkit.NewHTTPError(http.StatusUnprocessableEntity, "no recipient email",
			deliverkit.WithErrorCode(CodeNoRecipient), cause)
	case errors.Is(err, deliverable.ErrMissingFiles):
		return deliverkit.NewHTTPError(http.StatusUnprocessableEntity, "declared attachments were not uploaded",
			deliverkit.WithErrorCode(CodeMissingFiles), deliverkit.WithErrorDetail(err.Error()), cause)
	case errors.Is(err, storage.ErrEmptyFile):
		return deliverkit.NewHTTPError(http.StatusUnprocessableEntity, "uploaded file is empty",
			deliverkit.WithErrorCode(storage.ErrCodeEmptyFile), cause)
	case errors.As(err, &invalid):
		return deliverkit.NewHTTPError(http.StatusUnprocessableEntity, invalid.Message,
			deliverkit.WithErrorCode(invalid.Code), cause)
	case errors.Is(err, deliverable.ErrUploadFailed):
		return deliverkit.NewHTTPError(http.StatusBadGateway, "attachment upload failed",
			deliverkit.WithErrorCode(CodeUploadFailed), cause)
	case errors.Is(err, mailer.ErrTemplateNotFound),
		errors.Is(err, mailer.ErrLayoutNotFound),
		errors.Is(err, mailer.ErrInvalidFrontmatter),
		errors.Is(err, mailer.ErrNoSubject),
		errors.Is(err, mailer.ErrNoContent),
		errors.Is(err, mailer.ErrRenderFailed),
		errors.Is(err, deliverable.ErrRenderFailed):
		return deliverkit.NewHTTPError(http.StatusUnprocessableEntity, "email could not be rendered",
			deliverkit.WithErrorCode(CodeTemplateError), deliverkit.WithErrorDetail(err.Error()), cause)
	case errors.Is(err, deliverable.ErrSendFailed):
		return deliverkit.NewHTTPError(http.StatusBadGateway, "email delivery failed",
			deliverkit.WithErrorCode(CodeSendFailed), cause)
	}
	return err
}
