// Package deliverable assembles a client deliverable from a form submission
// and uploaded files, and emails it.
//
// Service.Create runs the pipeline:
//
//  1. bind uploads to the attachment slots of the custom fields
//  2. store every attachment marked ready for upload
//  3. build template variables from the submission
//  4. render and send the email through the mailer
//
// Stored attachments get a download link that is exposed to the template as
// {{attachment_links}}, next to {{deliverable_id}} and {{attachment_count}}.
// Form fields with the same normalized label take precedence over these.
//
//	svc := deliverable.NewService(store, m, cfg, deliverable.WithLogger(log))
//	d, err := svc.Create(ctx, deliverable.Request{
//		Submission: sub,
//		Fields:     fields,
//		Files:      files,
//	})
package deliverable
