// Package deliverkit assembles client deliverables from form submissions and
// uploaded files, and sends them by email.
//
// The building blocks live under pkg/:
//
//   - formdata: submissions, ordered values and form field keys
//   - placeholder: {{name}} substitution over submission variables
//   - attachment: binding uploaded files to attachment fields
//   - storage: S3 and in-memory file storage with signed links
//   - mailer: markdown templates, layouts and the Resend sender
//   - deliverable: the pipeline that ties them together
//
// This package is a thin HTTP layer on top of them. Create an application with
// New, register handlers, and call Run:
//
//	app := deliverkit.New(
//	    deliverkit.WithCustomLogger(log),
//	    deliverkit.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Locale(),
//	    ),
//	    deliverkit.WithHandlers(handlers.NewDeliverables(svc, m, cfg)),
//	    deliverkit.WithHealthChecks(
//	        deliverkit.WithReadinessCheck("storage", store.Ping),
//	    ),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] and return errors instead of writing them:
//
//	func (h *Deliverables) Routes(r deliverkit.Router) {
//	    r.POST("/deliverables", h.create)
//	}
//
// An [HTTPError] keeps its status; other errors become a JSON 500.
package deliverkit
