// Package health serves liveness and readiness probes for the deliverable
// service.
//
//	r.Get("/health", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"storage": store.Ping,
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Checks run concurrently under a shared timeout. Responses are plain text
// ("OK" / "Service Unavailable") unless the client asks for JSON through
// ?format=json or the Accept header, in which case the per-check status,
// error and latency are included.
package health
