package deliverable_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/pkg/attachment"
	"github.com/dmitrymomot/deliverkit/pkg/deliverable"
	"github.com/dmitrymomot/deliverkit/pkg/formdata"
	"github.com/dmitrymomot/deliverkit/pkg/mailer"
	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n0000")

var templates = fstest.MapFS{
	"layouts/base.html": {Data: []byte(`<html><body>{{.Content}}</body></html>`)},
	"deliverable.md": {Data: []byte(`---
subject: Your files for {{project_name}}
---
Hi {{client_name}}, here are {{attachment_count}} files.

{{attachment_links}}
`)},
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type outbox struct {
	sent []*mailer.Email
	err  error
}

func (o *outbox) Send(_ context.Context, e *mailer.Email) error {
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, e)
	return nil
}

func newService(t *testing.T, store storage.Storage, box *outbox, cfg deliverable.Config, opts ...deliverable.Option) *deliverable.Service {
	t.Helper()
	m := mailer.New(box, mailer.NewRenderer(templates), mailer.Config{
		DefaultLayout:   "base.html",
		FallbackSubject: "Your deliverable from {{project_name}}",
	})
	opts = append([]deliverable.Option{deliverable.WithClock(func() time.Time { return fixedNow })}, opts...)
	return deliverable.NewService(store, m, cfg, opts...)
}

func submission() *formdata.Submission {
	sub := &formdata.Submission{ClientName: "Jane", ClientEmail: "jane@example.com"}
	sub.FormValues.Set("budget", formdata.FieldResult{Label: "Budget", Value: formdata.Int(5000)})
	return sub
}

func fields() []attachment.CustomField {
	return []attachment.CustomField{
		{Type: attachment.TypeText, Label: "Notes", Value: "final cut"},
		{Type: attachment.TypeAttachment, Label: "Files", Attachments: []attachment.Attachment{
			{Name: "logo", FileID: "f1"},
			{Name: "brief", FileID: "f2"},
		}},
	}
}

func uploads() []attachment.UploadedFile {
	return []attachment.UploadedFile{
		{FieldName: "file_f1", OriginalName: "logo.png", MimeType: "image/png", Data: pngBytes, Size: int64(len(pngBytes))},
		{FieldName: "f2", OriginalName: "brief.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4"), Size: 8},
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory("https://cdn.example.com")
	box := &outbox{}
	svc := newService(t, store, box, deliverable.Config{})

	d, err := svc.Create(context.Background(), deliverable.Request{
		Submission: submission(),
		Project:    &formdata.ProjectContext{Name: "Rebrand"},
		Fields:     fields(),
		Files:      uploads(),
	})
	require.NoError(t, err)

	require.Len(t, d.ID, 26)
	assert.Equal(t, fixedNow, d.CreatedAt)
	assert.Equal(t, "jane@example.com", d.Recipient)
	assert.Equal(t, "Your files for Rebrand", d.Subject)
	assert.Equal(t, 2, d.Uploaded)
	assert.Empty(t, d.Missing)
	assert.Equal(t, 2, store.Len())

	require.Len(t, d.Fields, 2)
	assert.Equal(t, "final cut", d.Fields[0].Value)
	for _, att := range d.Fields[1].Attachments {
		assert.True(t, strings.HasPrefix(att.Key, "deliverables/"+d.ID+"/"), att.Key)
		assert.True(t, strings.HasPrefix(att.URL, "https://cdn.example.com/"+att.Key), att.URL)
		assert.Nil(t, att.File, "payload is released after upload")
		assert.False(t, att.ReadyForUpload)

		info, ok := store.Stat(att.Key)
		require.True(t, ok)
		assert.Equal(t, att.Type, info.ContentType)
	}
	assert.Equal(t, "logo.png", d.Fields[1].Attachments[0].Name)

	require.Len(t, box.sent, 1)
	email := box.sent[0]
	assert.Equal(t, []string{"Jane <jane@example.com>"}, email.To)
	assert.Equal(t, d.ID, email.Tags["deliverable_id"])
	assert.Contains(t, email.Text, "Hi Jane, here are 2 files.")
	assert.Contains(t, email.Text, "logo.png: https://cdn.example.com/deliverables/")
	assert.Contains(t, email.Text, "brief.pdf: https://cdn.example.com/deliverables/")
	assert.Empty(t, email.Attachments)
}

func TestService_Create_InlineTemplate(t *testing.T) {
	t.Parallel()

	box := &outbox{}
	svc := newService(t, storage.NewMemory(""), box, deliverable.Config{})

	d, err := svc.Create(context.Background(), deliverable.Request{
		Submission: submission(),
		Recipient:  "pm@example.com",
		Template:   "Budget: {{budget}}, id {{deliverable_id}}",
		Subject:    "Deliverable for {{client_name}}",
	})
	require.NoError(t, err)

	assert.Equal(t, "pm@example.com", d.Recipient)
	assert.Equal(t, "Deliverable for Jane", d.Subject)
	assert.Equal(t, 0, d.Uploaded)
	require.Len(t, box.sent, 1)
	assert.Contains(t, box.sent[0].Text, "Budget: 5000, id "+d.ID)
}

func TestService_Create_FormFieldWinsOverBuiltins(t *testing.T) {
	t.Parallel()

	box := &outbox{}
	svc := newService(t, storage.NewMemory(""), box, deliverable.Config{})

	sub := submission()
	sub.FormValues.Set("count", formdata.FieldResult{Label: "Attachment Count", Value: formdata.String("many")})

	_, err := svc.Create(context.Background(), deliverable.Request{
		Submission: sub,
		Template:   "{{attachment_count}}",
	})
	require.NoError(t, err)
	require.Len(t, box.sent, 1)
	assert.Contains(t, box.sent[0].Text, "many")
}

func TestService_Create_IgnoresClientBindState(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory("")
	box := &outbox{}
	svc := newService(t, store, box, deliverable.Config{})

	forged := []attachment.CustomField{{Type: attachment.TypeAttachment, Label: "Files", Attachments: []attachment.Attachment{
		{Name: "old", ReadyForUpload: true, TempFileID: "x", File: &attachment.FileData{Type: "text/plain"}},
		{Name: "logo", FileID: "f1"},
	}}}

	d, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: forged, Files: uploads()})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Uploaded)
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, d.Fields[0].Attachments[0].Key)
	assert.False(t, d.Fields[0].Attachments[0].ReadyForUpload)
	assert.NotEmpty(t, d.Fields[0].Attachments[1].Key)
	require.Len(t, box.sent, 1)
}

func TestService_Create_MissingFiles(t *testing.T) {
	t.Parallel()

	files := uploads()[:1]

	t.Run("reported by default", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemory("")
		svc := newService(t, store, &outbox{}, deliverable.Config{})
		d, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: files})
		require.NoError(t, err)
		assert.Equal(t, []string{"f2"}, d.Missing)
		assert.Equal(t, 1, d.Uploaded)
		assert.True(t, d.Fields[1].Attachments[1].FileNotFound)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("rejected when all files are required", func(t *testing.T) {
		t.Parallel()

		store := storage.NewMemory("")
		box := &outbox{}
		svc := newService(t, store, box, deliverable.Config{RequireAllFiles: true})
		_, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: files})
		require.ErrorIs(t, err, deliverable.ErrMissingFiles)
		assert.Contains(t, err.Error(), "f2")
		assert.Zero(t, store.Len())
		assert.Empty(t, box.sent)
	})
}

func TestService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := newService(t, storage.NewMemory(""), &outbox{}, deliverable.Config{})

	_, err := svc.Create(context.Background(), deliverable.Request{})
	require.ErrorIs(t, err, deliverable.ErrNoSubmission)

	_, err = svc.Create(context.Background(), deliverable.Request{Submission: &formdata.Submission{ClientName: "Jane"}})
	require.ErrorIs(t, err, deliverable.ErrNoRecipient)
}

func TestService_Create_EmptyPayloadRejectedByStorage(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory("")
	box := &outbox{}
	svc := newService(t, store, box, deliverable.Config{UploadConcurrency: 1})

	files := uploads()
	files[1].Data = nil
	files[1].Size = 0

	_, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: files})
	require.ErrorIs(t, err, deliverable.ErrUploadFailed)
	require.ErrorIs(t, err, storage.ErrEmptyFile)
	assert.Zero(t, store.Len(), "stored files are removed on failure")
	assert.Empty(t, box.sent)
}

func TestService_Create_EmptyPayloadRejectedByBinder(t *testing.T) {
	t.Parallel()

	files := uploads()
	files[1].Data = nil
	files[1].Size = 0
	binder := deliverable.WithBinder(attachment.NewBinder(attachment.WithEmptyPayload(attachment.EmptyPayloadReject)))

	t.Run("reported as missing", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, storage.NewMemory(""), &outbox{}, deliverable.Config{}, binder)
		d, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: files})
		require.NoError(t, err)
		assert.Equal(t, []string{"f2"}, d.Missing)
		assert.Equal(t, 1, d.Uploaded)
	})

	t.Run("named in the error when all files are required", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, storage.NewMemory(""), &outbox{}, deliverable.Config{RequireAllFiles: true}, binder)
		_, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: files})
		require.ErrorIs(t, err, deliverable.ErrMissingFiles)
		assert.Contains(t, err.Error(), "f2")
	})
}

type flakyStorage struct {
	*storage.MemoryStorage
	failAfter int32
	puts      atomic.Int32
}

func (f *flakyStorage) Put(ctx context.Context, r io.Reader, size int64, opts ...storage.Option) (*storage.FileInfo, error) {
	if f.puts.Add(1) > f.failAfter {
		return nil, storage.ErrUploadFailed
	}
	return f.MemoryStorage.Put(ctx, r, size, opts...)
}

func TestService_Create_UploadFailureCleansUp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	store := &flakyStorage{MemoryStorage: storage.NewMemory(""), failAfter: 1}
	svc := newService(t, store, &outbox{}, deliverable.Config{UploadConcurrency: 1},
		deliverable.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	_, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: uploads()})
	require.ErrorIs(t, err, deliverable.ErrUploadFailed)
	require.ErrorIs(t, err, storage.ErrUploadFailed)
	assert.Zero(t, store.Len())
}

func TestService_Create_SendFailure(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory("")
	box := &outbox{err: errors.New("provider down")}
	svc := newService(t, store, box, deliverable.Config{})

	d, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: uploads()})
	require.ErrorIs(t, err, deliverable.ErrSendFailed)
	require.NotNil(t, d)
	assert.Equal(t, 2, d.Uploaded)
	assert.Equal(t, 2, store.Len(), "uploads survive a failed send")
}

func TestService_Create_AttachToEmail(t *testing.T) {
	t.Parallel()

	box := &outbox{}
	svc := newService(t, storage.NewMemory(""), box, deliverable.Config{AttachToEmail: true})

	_, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: uploads()})
	require.NoError(t, err)
	require.Len(t, box.sent, 1)

	atts := box.sent[0].Attachments
	require.Len(t, atts, 2)
	assert.Equal(t, "logo.png", atts[0].Filename)
	assert.Equal(t, "image/png", atts[0].ContentType)
	assert.Equal(t, pngBytes, atts[0].Content)
	assert.Equal(t, "brief.pdf", atts[1].Filename)
}

func TestService_Create_MaxFileSize(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory("")
	svc := newService(t, store, &outbox{}, deliverable.Config{MaxFileSize: 4})

	_, err := svc.Create(context.Background(), deliverable.Request{Submission: submission(), Fields: fields(), Files: uploads()})
	require.ErrorIs(t, err, deliverable.ErrUploadFailed)

	var verr *storage.FileValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, storage.ErrCodeFileTooLarge, verr.Code)
	assert.Zero(t, store.Len())
}
