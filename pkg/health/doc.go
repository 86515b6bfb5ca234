// Package health provides HTTP handlers for liveness and readiness probes.
//
// Liveness answers while the process runs. Readiness runs a set of named
// [Checks] in parallel, the mail provider's credentials for example, and
// answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "mailer": mailer.Healthcheck(sender),
//	}, health.WithTimeout(3*time.Second)))
//
// Both answer JSON. A failing readiness probe uses the contact endpoint's
// error shape, so one client-side parser handles every response:
//
//	{"status":"unhealthy","error":"Service indisponible.","checks":{"mailer":{"status":"unhealthy","error":"...","latency_ms":0}}}
package health
