package mailer

import (
	"context"
	"fmt"
)

// Sender delivers prepared emails. Implementations live in subpackages,
// see mailer/resend.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) error

func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}

// Tags label an email for provider-side filtering. A struct{}{} value marks
// a presence-only tag; providers that need values render it as "true".
type Tags map[string]any

// Recipient formats an RFC 5322 address: "Name <email>", or just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully rendered message.
type Email struct {
	Headers     map[string]string
	Tags        Tags
	Subject     string
	HTML        string
	Text        string
	From        string // empty uses the sender's configured address
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Validate reports the first missing required part of e.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "" && e.Text == "":
		return ErrNoContent
	}
	return nil
}

// Attachment is a file sent with an email.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string // set for inline images
	Content     []byte
}
