package deliverable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/deliverkit/pkg/attachment"
	"github.com/dmitrymomot/deliverkit/pkg/formdata"
	"github.com/dmitrymomot/deliverkit/pkg/i18n"
	"github.com/dmitrymomot/deliverkit/pkg/id"
	"github.com/dmitrymomot/deliverkit/pkg/logger"
	"github.com/dmitrymomot/deliverkit/pkg/mailer"
	"github.com/dmitrymomot/deliverkit/pkg/placeholder"
	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

// Variables added to every deliverable email unless a form field with the
// same name already set them.
const (
	VarDeliverableID   = "deliverable_id"
	VarAttachmentCount = "attachment_count"
	VarAttachmentLinks = "attachment_links"
)

// Request is one deliverable to assemble and send.
type Request struct {
	Submission *formdata.Submission
	Project    *formdata.ProjectContext
	Fields     []attachment.CustomField
	Files      []attachment.UploadedFile

	// Recipient defaults to the submission's client email.
	Recipient string
	// Template is an inline markdown template; empty uses Config.DefaultTemplate.
	Template string
	// Subject overrides the template subject.
	Subject string
	// Locale formats submission_date; nil keeps the renderer's locale.
	Locale *i18n.LocaleFormat
}

// Deliverable is the outcome of Create.
type Deliverable struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"createdAt"`
	Recipient string                   `json:"recipient"`
	Subject   string                   `json:"subject"`
	Text      string                   `json:"text"`
	Fields    []attachment.CustomField `json:"customFields"`
	Uploaded  int                      `json:"uploaded"`
	Missing   []string                 `json:"missing,omitempty"`
}

// Service binds uploaded files to a deliverable's attachment fields, stores
// them, and emails the client a rendered message with download links.
type Service struct {
	store    storage.Storage
	mailer   *mailer.Mailer
	binder   *attachment.Binder
	renderer *placeholder.Renderer
	logger   *slog.Logger
	now      func() time.Time
	cfg      Config
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBinder replaces the default attachment binder.
func WithBinder(b *attachment.Binder) Option {
	return func(s *Service) {
		if b != nil {
			s.binder = b
		}
	}
}

// WithRenderer replaces the default placeholder renderer.
func WithRenderer(r *placeholder.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithClock sets the time source for IDs and creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service.
func NewService(store storage.Storage, m *mailer.Mailer, cfg Config, opts ...Option) *Service {
	cfg.applyDefaults()
	s := &Service{
		store:  store,
		mailer: m,
		cfg:    cfg,
		logger: logger.NewNope(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.binder == nil {
		s.binder = attachment.NewBinder(attachment.WithLogger(s.logger))
	}
	if s.renderer == nil {
		s.renderer = placeholder.New(placeholder.WithLogger(s.logger), placeholder.WithClock(s.now))
	}
	return s
}

// Create binds req.Files into req.Fields, uploads every attachment that is
// ready, and sends the email.
//
// Uploads run concurrently, bounded by Config.UploadConcurrency. If any upload
// fails the files already stored for this deliverable are deleted and
// ErrUploadFailed is returned. A send failure keeps the stored files.
func (s *Service) Create(ctx context.Context, req Request) (*Deliverable, error) {
	if req.Submission == nil {
		return nil, ErrNoSubmission
	}
	recipient := req.Recipient
	if recipient == "" {
		recipient = req.Submission.ClientEmail
	}
	if recipient == "" {
		return nil, ErrNoRecipient
	}

	createdAt := s.now()
	d := &Deliverable{
		ID:        id.NewULIDAt(createdAt),
		CreatedAt: createdAt,
		Recipient: recipient,
	}
	log := s.logger.With(slog.String("deliverable_id", d.ID))

	// Bind state in req.Fields comes from the client; only the binder sets it.
	fields, report := s.binder.BindWithReport(ctx, attachment.ClearBindState(req.Fields), req.Files)
	d.Missing = report.Missing
	if s.cfg.RequireAllFiles && report.NotFound > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFiles, strings.Join(report.Missing, ", "))
	}

	var attachments []mailer.Attachment
	if s.cfg.AttachToEmail {
		attachments = emailAttachments(fields)
	}

	uploaded, err := s.upload(ctx, d.ID, fields)
	if err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}
	d.Fields = fields
	d.Uploaded = uploaded

	renderer := s.renderer
	if req.Locale != nil {
		renderer = renderer.With(placeholder.WithLocaleFormat(req.Locale))
	}
	vars := renderer.Variables(*req.Submission, req.Project)
	setDefault(vars, VarDeliverableID, formdata.String(d.ID))
	setDefault(vars, VarAttachmentCount, formdata.Int(int64(uploaded)))
	setDefault(vars, VarAttachmentLinks, formdata.String(attachmentLinks(fields)))

	params := mailer.SendParams{
		To:          mailer.Recipient(req.Submission.ClientName, recipient),
		Variables:   vars,
		Subject:     req.Subject,
		Attachments: attachments,
		Tags: mailer.Tags{
			"deliverable_id": d.ID,
			"attachments":    uploaded,
		},
	}
	if req.Template != "" {
		params.Body = req.Template
	} else {
		params.Template = s.cfg.DefaultTemplate
	}

	email, err := s.mailer.Compose(params)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}
	d.Subject = email.Subject
	d.Text = email.Text

	if err := s.mailer.SendRaw(ctx, email); err != nil {
		log.ErrorContext(ctx, "deliverable email not sent", slog.String("error", err.Error()))
		return d, errors.Join(ErrSendFailed, err)
	}

	log.InfoContext(ctx, "deliverable sent",
		slog.Int("uploaded", uploaded),
		slog.Int("missing", report.NotFound),
	)
	return d, nil
}

// upload stores the ready attachments of fields in place and returns how
// many were stored. Stored attachments get Key and URL set, their payload
// released and ReadyForUpload cleared.
func (s *Service) upload(ctx context.Context, deliverableID string, fields []attachment.CustomField) (int, error) {
	var ready []*attachment.Attachment
	for i := range fields {
		if fields[i].Type != attachment.TypeAttachment {
			continue
		}
		for j := range fields[i].Attachments {
			if a := &fields[i].Attachments[j]; a.ReadyForUpload && a.File != nil && a.TempFileID != "" {
				ready = append(ready, a)
			}
		}
	}
	if len(ready) == 0 {
		return 0, nil
	}

	var (
		mu     sync.Mutex
		stored []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.UploadConcurrency)

	for _, att := range ready {
		g.Go(func() error {
			opts := []storage.Option{
				storage.WithTenant(s.cfg.StoragePrefix),
				storage.WithPrefix(deliverableID),
				storage.WithContentType(att.File.Type),
				storage.WithValidation(storage.NotEmpty()),
			}
			if s.cfg.MaxFileSize > 0 {
				opts = append(opts, storage.WithValidation(storage.MaxSize(s.cfg.MaxFileSize)))
			}

			info, err := storage.PutBytes(gctx, s.store, att.File.Data, att.Name, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", att.Name, err)
			}
			mu.Lock()
			stored = append(stored, info.Key)
			mu.Unlock()

			link, err := s.store.URL(gctx, info.Key, storage.WithExpiry(s.cfg.LinkExpiry), storage.WithDownload(att.Name))
			if err != nil {
				return fmt.Errorf("%s: %w", att.Name, err)
			}

			att.Key = info.Key
			att.URL = link
			att.Size = info.Size
			att.File = nil
			att.ReadyForUpload = false
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.cleanup(context.WithoutCancel(ctx), stored)
		return 0, err
	}
	return len(ready), nil
}

func (s *Service) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to delete orphaned attachment",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
}

func emailAttachments(fields []attachment.CustomField) []mailer.Attachment {
	var out []mailer.Attachment
	for _, a := range attachment.ReadyAttachments(fields) {
		if a.File == nil || len(a.File.Data) == 0 {
			continue
		}
		out = append(out, mailer.Attachment{
			Filename:    a.Name,
			ContentType: a.File.Type,
			Content:     a.File.Data,
		})
	}
	return out
}

// attachmentLinks lists stored attachments as "name: url" lines.
func attachmentLinks(fields []attachment.CustomField) string {
	var b strings.Builder
	for _, f := range fields {
		if f.Type != attachment.TypeAttachment {
			continue
		}
		for _, a := range f.Attachments {
			if a.URL == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(a.Name + ": " + a.URL)
		}
	}
	return b.String()
}

func setDefault(vars *placeholder.VariableMap, key string, v formdata.Value) {
	if !vars.Has(key) {
		vars.Set(key, v)
	}
}
