// Package mailer renders deliverable emails from markdown templates and sends
// them through a pluggable provider.
//
// A Mailer combines a Renderer with a Sender:
//
//	renderer := mailer.NewRendererWithConfig(templates.FS, mailer.RendererConfig{Logger: log})
//	m := mailer.New(resend.New(resendCfg), renderer, mailer.Config{
//		FallbackSubject: "Your deliverable from {{project_name}}",
//		DefaultLayout:   "base.html",
//	})
//
//	vars := placeholder.New().Variables(sub, project)
//	err := m.Send(ctx, mailer.SendParams{
//		To:        mailer.Recipient(sub.ClientName, sub.ClientEmail),
//		Template:  "invoice.md",
//		Variables: vars,
//	})
//
// # Templates
//
// Templates are markdown with optional YAML frontmatter and {{variable}}
// placeholders, resolved by package placeholder:
//
//	---
//	subject: Invoice for {{project_name}}
//	---
//	Hi {{client_name}},
//
//	the total for **{{project_name}}** is {{total_amount}}.
//
//	[!button|View files](https://example.com/d/{{deliverable_id}})
//
// Values are markdown-escaped before conversion, so a client name such as
// "*Acme*" is shown literally. The plain-text part uses the raw values.
// Unknown placeholders stay in the output.
//
// Button links render as <a class="btn">; "[!button:secondary|...]" adds
// the class "btn-secondary". The converted HTML is passed through
// sanitizer.SanitizeEmailHTML and then executed inside an html/template layout
// with .Content, .Subject, .Metadata and .Variables.
//
// Templates can also be passed inline with SendParams.Body; these are not cached.
//
// # Providers
//
// Sender is implemented by mailer/resend. Any func(ctx, *Email) error can be
// used through SenderFunc.
package mailer
