package hostrouter

import (
	"net/http"
	"strings"
)

// Routes maps host patterns to HTTP handlers.
type Routes map[string]http.Handler

// Router routes requests based on the Host header.
type Router struct {
	exact    map[string]http.Handler // "contact.acme.fr" -> handler
	wildcard map[string]http.Handler // "acme.fr" -> handler (for *.acme.fr)
	fallback http.Handler
}

// New creates a host router from the given routes.
// The fallback handler serves hosts that match no pattern; nil means 404.
func New(routes Routes, fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}

	r := &Router{
		exact:    make(map[string]http.Handler),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}

	for pattern, handler := range routes {
		pattern = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(pattern)), ".")
		if pattern == "" || handler == nil {
			continue
		}
		if suffix, ok := strings.CutPrefix(pattern, "*."); ok {
			r.wildcard[suffix] = handler
		} else {
			r.exact[pattern] = handler
		}
	}

	return r
}

// Lookup returns the handler registered for host, if any.
func (r *Router) Lookup(host string) (http.Handler, bool) {
	host = NormalizeHost(host)

	if h, ok := r.exact[host]; ok {
		return h, true
	}

	// Walk up the labels: a.b.acme.fr tries b.acme.fr then acme.fr.
	for rest := host; ; {
		_, parent, ok := strings.Cut(rest, ".")
		if !ok {
			break
		}
		if h, ok := r.wildcard[parent]; ok {
			return h, true
		}
		rest = parent
	}

	return nil, false
}

// ServeHTTP routes requests based on the Host header.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.Lookup(req.Host); ok {
		h.ServeHTTP(w, req)
		return
	}
	r.fallback.ServeHTTP(w, req)
}

// NormalizeHost strips the port and trailing dot and lowercases the host.
// IPv6 literals keep their brackets.
//
//	"Contact.Acme.FR:8080" -> "contact.acme.fr"
//	"[::1]:8080"           -> "[::1]"
func NormalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return strings.TrimSuffix(strings.ToLower(host), ".")
}
