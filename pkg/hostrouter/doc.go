// Package hostrouter dispatches requests to per-brand handlers by Host header.
//
// Patterns are either exact ("contact.acme.fr") or wildcard ("*.acme.fr").
// A wildcard matches any depth of subdomain and exact patterns win over
// wildcards. Matching ignores case, the port and a trailing dot:
//
//	router := hostrouter.New(hostrouter.Routes{
//	    "contact.acme.fr": acmeApp,
//	    "*.studio.io":     studioApp,
//	}, defaultApp)
package hostrouter
