package mailer

import (
	"context"
	"errors"

	"github.com/dmitrymomot/deliverkit/pkg/placeholder"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams describes one templated email.
type SendParams struct {
	To        string
	Template  string                   // template file name; takes precedence over Body
	Body      string                   // inline markdown template
	Variables *placeholder.VariableMap // values for {{name}} placeholders

	Subject     string // overrides the template subject; placeholders are resolved
	Layout      string // overrides Config.DefaultLayout
	From        string
	ReplyTo     string
	CC          []string
	BCC         []string
	Attachments []Attachment
	Tags        Tags
}

// Send renders params and sends the email.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	email, err := m.Compose(params)
	if err != nil {
		return err
	}
	return m.SendRaw(ctx, email)
}

// Compose renders params into an Email without sending it.
// Subject precedence: params.Subject, template frontmatter, Config.FallbackSubject.
func (m *Mailer) Compose(params SendParams) (*Email, error) {
	if params.To == "" {
		return nil, ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	var (
		result *RenderResult
		err    error
	)
	switch {
	case params.Template != "":
		result, err = m.renderer.Render(layout, params.Template, params.Variables)
	case params.Body != "":
		result, err = m.renderer.RenderString(layout, params.Body, params.Variables)
	default:
		return nil, ErrNoContent
	}
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	subject := result.Subject
	switch {
	case params.Subject != "":
		subject = placeholder.Replace(params.Subject, params.Variables)
	case subject == "":
		subject = placeholder.Replace(m.config.FallbackSubject, params.Variables)
	}

	return &Email{
		To:          []string{params.To},
		Subject:     subject,
		HTML:        result.HTML,
		Text:        result.Text,
		From:        params.From,
		ReplyTo:     params.ReplyTo,
		CC:          params.CC,
		BCC:         params.BCC,
		Attachments: params.Attachments,
		Tags:        params.Tags,
	}, nil
}

// SendRaw validates and sends a prepared email.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
