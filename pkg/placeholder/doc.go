// Package placeholder renders free-text templates such as invoice email
// bodies by resolving {{variable}} placeholders against a form submission.
//
// # Variables
//
// Each render builds a fresh variable map. Built-in variables come first:
//
//	client_name      submission client name, or "Client"
//	client_email     submission client email, or ""
//	client_phone     submission client phone, or ""
//	client_company   submission client company, or ""
//	project_name     project context name, or "New Project"
//	submission_date  the renderer clock formatted with its locale
//	form_name        submission form name
//
// Every form answer with a label and a defined value is then added under its
// normalized label (see formdata.NormalizeKey), so an answer labelled
// "Total Amount" is available as {{total_amount}}. Later entries overwrite
// earlier ones with the same name.
//
// # Rendering
//
//	r := placeholder.New(placeholder.WithLogger(log))
//	text := r.Render("Hi {{client_name}}, total due {{amount}}", sub, nil)
//
// Placeholder names match [a-z0-9_]+ case-insensitively. Unknown placeholders
// are left in the output unchanged, values are inserted literally and never
// re-scanned, and an empty template renders as "". Render has no error return.
package placeholder
