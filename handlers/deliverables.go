package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/deliverkit"
	"github.com/dmitrymomot/deliverkit/middlewares"
	"github.com/dmitrymomot/deliverkit/pkg/attachment"
	"github.com/dmitrymomot/deliverkit/pkg/cache"
	"github.com/dmitrymomot/deliverkit/pkg/deliverable"
	"github.com/dmitrymomot/deliverkit/pkg/formdata"
	"github.com/dmitrymomot/deliverkit/pkg/sanitizer"
)

// Multipart form values read by the create endpoint. File parts may use
// any field name; they are matched to attachment slots by FileID.
const (
	FieldSubmission   = "submission"
	FieldProject      = "project"
	FieldCustomFields = "customFields"
	FieldRecipient    = "recipient"
	FieldTemplate     = "template"
	FieldSubject      = "subject"
)

// Headers used for idempotent replays.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

const maxIdempotencyKeyLength = 255

// DeliverablesHandler accepts multipart deliverable submissions.
type DeliverablesHandler struct {
	svc         *deliverable.Service
	replays     cache.Cache[deliverable.Deliverable]
	replayTTL   time.Duration
	maxBodySize int64
	maxFileSize int64
}

// DeliverablesOption configures a DeliverablesHandler.
type DeliverablesOption func(*DeliverablesHandler)

// WithIdempotency replays the stored deliverable for requests repeating an
// Idempotency-Key within ttl, instead of sending again.
func WithIdempotency(replays cache.Cache[deliverable.Deliverable], ttl time.Duration) DeliverablesOption {
	return func(h *DeliverablesHandler) {
		h.replays = replays
		h.replayTTL = ttl
	}
}

// WithMaxBodySize limits the whole request body. Default: 64MB.
func WithMaxBodySize(n int64) DeliverablesOption {
	return func(h *DeliverablesHandler) { h.maxBodySize = n }
}

// WithMaxFileSize limits each uploaded file while the body is read.
// Zero disables the check. Default: 25MB.
func WithMaxFileSize(n int64) DeliverablesOption {
	return func(h *DeliverablesHandler) { h.maxFileSize = n }
}

// NewDeliverablesHandler creates a DeliverablesHandler.
func NewDeliverablesHandler(svc *deliverable.Service, opts ...DeliverablesOption) *DeliverablesHandler {
	h := &DeliverablesHandler{
		svc:         svc,
		maxBodySize: 64 << 20,
		maxFileSize: 25 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements deliverkit.Handler.
func (h *DeliverablesHandler) Routes(r deliverkit.Router) {
	r.POST("/deliverables", h.create)
}

func (h *DeliverablesHandler) create(c deliverkit.Context) error {
	key := strings.TrimSpace(c.Header(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLength {
		return deliverkit.NewHTTPError(http.StatusBadRequest, "idempotency key too long",
			deliverkit.WithErrorCode(CodeMalformedRequest))
	}

	req, err := h.parse(c)
	if err != nil {
		return mapError(err)
	}
	req.Locale = middlewares.GetLocale(c)

	if key == "" || h.replays == nil {
		d, err := h.svc.Create(c.Context(), req)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusCreated, d)
	}

	d, hit, err := cache.Once(c.Context(), h.replays, "deliverable:"+key, h.replayTTL, func(ctx context.Context) (deliverable.Deliverable, error) {
		d, err := h.svc.Create(ctx, req)
		if err != nil {
			return deliverable.Deliverable{}, err
		}
		return *d, nil
	})
	if err != nil {
		return mapError(err)
	}
	if hit {
		c.LogInfo("deliverable replayed", "deliverable_id", d.ID)
		c.SetHeader(HeaderReplayed, "true")
		return c.JSON(http.StatusOK, d)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *DeliverablesHandler) parse(c deliverkit.Context) (deliverable.Request, error) {
	var req deliverable.Request

	r := c.Request()
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(c.Response(), r.Body, h.maxBodySize)
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return req, deliverkit.NewHTTPError(http.StatusBadRequest, "expected a multipart/form-data body",
			deliverkit.WithErrorCode(CodeMalformedRequest), deliverkit.WithErrorCause(err))
	}

	files, values, err := attachment.ReadParts(mr, h.maxFileSize)
	if err != nil {
		return req, err
	}

	var sub formdata.Submission
	if err := decodeValue(values, FieldSubmission, &sub); err != nil {
		return req, err
	}
	if values.Get(FieldSubmission) != "" {
		req.Submission = &sub
	}
	if values.Get(FieldProject) != "" {
		req.Project = &formdata.ProjectContext{}
		if err := decodeValue(values, FieldProject, req.Project); err != nil {
			return req, err
		}
	}
	if err := decodeValue(values, FieldCustomFields, &req.Fields); err != nil {
		return req, err
	}

	req.Files = files
	req.Recipient = strings.TrimSpace(values.Get(FieldRecipient))
	req.Template = values.Get(FieldTemplate)
	req.Subject = strings.TrimSpace(sanitizer.StripHTML(values.Get(FieldSubject)))
	return req, nil
}

// decodeValue unmarshals the JSON form value name into v. A missing value
// leaves v untouched.
func decodeValue(values url.Values, name string, v any) error {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return deliverkit.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s JSON", name),
			deliverkit.WithErrorCode(CodeMalformedRequest), deliverkit.WithErrorCause(err))
	}
	return nil
}
