// Package handlers exposes the deliverable pipeline over HTTP.
//
// Routes:
//
//	POST /deliverables   multipart submission, uploads files and emails the client
//	POST /render         renders a placeholder template against a submission
//	POST /render/email   previews a markdown email template inside the layout
//
// A deliverable request is multipart/form-data. The "submission", "project"
// and "customFields" parts carry JSON; "recipient", "subject" and "template"
// are plain values. Every file part is an upload, matched to attachment slots
// by its field name.
//
// Errors are returned as deliverkit.HTTPError values with a stable "code"
// (see the Code constants) and rendered by the app's error handler.
package handlers
