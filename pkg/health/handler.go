package health

import (
	"encoding/json"
	"net/http"
)

// LivenessHandler answers {"status":"healthy"} while the process serves
// requests. It runs no checks.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on every request. A failing check answers 503
// with the same {"error": ...} body as the contact endpoint, followed by the
// per-check report.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)
		if resp.Status == StatusHealthy {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		resp.Error = cfg.message
		writeJSON(w, http.StatusServiceUnavailable, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
