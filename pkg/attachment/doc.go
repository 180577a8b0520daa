// Package attachment binds uploaded files to the attachment slots declared
// on custom form fields.
//
// A custom field of type "attachment" declares file slots. Each slot names
// the upload it expects through FileID. Binder.Bind matches every slot to the
// first uploaded file whose multipart field name equals FileID or
// "file_"+FileID:
//
//	fields := []attachment.CustomField{{
//		Type:        attachment.TypeAttachment,
//		Label:       "Brand assets",
//		Attachments: []attachment.Attachment{{Name: "logo", FileID: "f1"}},
//	}}
//	mr, _ := r.MultipartReader()
//	files, values, err := attachment.ReadParts(mr, 25<<20)
//	bound := attachment.NewBinder(attachment.WithLogger(log)).Bind(ctx, fields, files)
//
// A matched slot gets the file payload, the upload's name, type and size,
// TempFileID set to the multipart field name, and ReadyForUpload. A slot with
// no match is kept and marked FileNotFound. Fields and slots are never dropped
// or reordered, and the input slices are not modified.
//
// Bind has no error return. Nil fields or an empty file list are passed
// through untouched, and problems are reported through the logger and
// BindWithReport's Report.
//
// # Empty payloads
//
// A matched upload without data is logged. By default the slot is still
// marked ReadyForUpload and the storage layer rejects it later with
// storage.ErrEmptyFile. WithEmptyPayload(EmptyPayloadReject) marks it
// FileNotFound at bind time instead.
package attachment
