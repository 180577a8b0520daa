package attachment

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/deliverkit/pkg/logger"
)

// tempFilePrefix is the alternate form-field prefix clients use for file parts.
const tempFilePrefix = "file_"

// Binder splices uploaded files into attachment fields.
// It holds only configuration and is safe for concurrent use.
type Binder struct {
	logger       *slog.Logger
	emptyPayload EmptyPayloadPolicy
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the logger for bind diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithEmptyPayload sets the policy for matched uploads without data.
// The default is EmptyPayloadAccept.
func WithEmptyPayload(p EmptyPayloadPolicy) Option {
	return func(b *Binder) {
		b.emptyPayload = p
	}
}

// NewBinder creates a Binder.
func NewBinder(opts ...Option) *Binder {
	b := &Binder{
		logger:       logger.NewNope(),
		emptyPayload: EmptyPayloadAccept,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind returns fields with uploaded files spliced into their attachments.
// See BindWithReport.
func (b *Binder) Bind(ctx context.Context, fields []CustomField, files []UploadedFile) []CustomField {
	out, _ := b.BindWithReport(ctx, fields, files)
	return out
}

// BindWithReport binds files to fields and summarizes the outcome.
//
// A nil fields slice, or an empty files slice, is returned as is. Otherwise
// the result is a shallow copy of fields in the same order: attachment
// fields get a new Attachments slice in which every attachment with a FileID
// is replaced by a bound copy (ReadyForUpload) or a marked copy
// (FileNotFound). Nothing is dropped or reordered, and the input is never
// modified. The context only carries logging attributes.
func (b *Binder) BindWithReport(ctx context.Context, fields []CustomField, files []UploadedFile) ([]CustomField, Report) {
	var report Report
	if fields == nil || len(files) == 0 {
		return fields, report
	}

	out := slices.Clone(fields)
	for i := range out {
		field := &out[i]
		if field.Type != TypeAttachment || len(field.Attachments) == 0 {
			continue
		}

		atts := make([]Attachment, len(field.Attachments))
		for j, att := range field.Attachments {
			atts[j] = b.bindOne(ctx, field.Label, att, files, &report)
		}
		field.Attachments = atts
	}

	if report.NotFound > 0 || report.EmptyPayload > 0 {
		b.logger.WarnContext(ctx, "attachment binding incomplete",
			slog.Int("bound", report.Bound),
			slog.Int("not_found", report.NotFound),
			slog.Int("empty_payload", report.EmptyPayload),
		)
	} else {
		b.logger.DebugContext(ctx, "attachments bound", slog.Int("bound", report.Bound))
	}

	return out, report
}

func (b *Binder) bindOne(ctx context.Context, fieldLabel string, att Attachment, files []UploadedFile, report *Report) Attachment {
	if att.FileID == "" {
		return att
	}

	file, ok := findUpload(files, att.FileID)
	if !ok {
		b.logger.WarnContext(ctx, "no uploaded file for attachment",
			slog.String("field", fieldLabel),
			slog.String("file_id", att.FileID),
			slog.String("name", att.Name),
		)
		report.NotFound++
		report.Missing = append(report.Missing, att.FileID)
		att.FileNotFound = true
		return att
	}

	if len(file.Data) == 0 {
		report.EmptyPayload++
		b.logger.WarnContext(ctx, "uploaded file has no data",
			slog.String("field", fieldLabel),
			slog.String("file_id", att.FileID),
			slog.String("upload_field", file.FieldName),
		)
		if b.emptyPayload == EmptyPayloadReject {
			report.NotFound++
			report.Missing = append(report.Missing, att.FileID)
			att.FileNotFound = true
			return att
		}
	}

	mime := file.MimeType
	if mime == "" {
		mime = MIMEOctetStream
	}

	att.File = &FileData{Data: file.Data, Type: mime}
	att.Name = firstNonEmpty(file.OriginalName, att.Name)
	att.Type = firstNonEmpty(file.MimeType, att.Type, MIMEOctetStream)
	att.Size = firstNonZero(file.Size, att.Size)
	att.TempFileID = file.FieldName
	att.ReadyForUpload = true
	att.FileNotFound = false
	report.Bound++
	return att
}

// findUpload returns the first file whose field name is fileID or "file_"+fileID.
func findUpload(files []UploadedFile, fileID string) (UploadedFile, bool) {
	prefixed := tempFilePrefix + fileID
	for _, f := range files {
		if f.FieldName == fileID || f.FieldName == prefixed {
			return f, true
		}
	}
	return UploadedFile{}, false
}

// ReadyAttachments returns the bound attachments across fields, in order.
func ReadyAttachments(fields []CustomField) []Attachment {
	var out []Attachment
	for _, f := range fields {
		if f.Type != TypeAttachment {
			continue
		}
		for _, a := range f.Attachments {
			if a.ReadyForUpload {
				out = append(out, a)
			}
		}
	}
	return out
}

// ClearBindState returns a copy of fields with the binder-owned state of
// every attachment cleared: File, TempFileID, ReadyForUpload and
// FileNotFound. Use it on fields decoded from client JSON, where those flags
// cannot be trusted. Declared data such as Name, FileID, Key and URL is kept.
func ClearBindState(fields []CustomField) []CustomField {
	if fields == nil {
		return nil
	}
	out := slices.Clone(fields)
	for i := range out {
		if len(out[i].Attachments) == 0 {
			continue
		}
		atts := slices.Clone(out[i].Attachments)
		for j := range atts {
			atts[j].File = nil
			atts[j].TempFileID = ""
			atts[j].ReadyForUpload = false
			atts[j].FileNotFound = false
		}
		out[i].Attachments = atts
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
