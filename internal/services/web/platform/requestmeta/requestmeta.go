// Package requestmeta answers transport questions about a request that cookie
// code needs.
package requestmeta

import (
	"net/http"
	"strings"
)

// SchemePolicy decides which request data may report the client scheme.
// Proxy headers are ignored unless TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// Scheme returns "https" or "http" for r, or "" for a nil request.
func (p SchemePolicy) Scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		if proto := forwardedProto(r.Header); proto != "" {
			return proto
		}
	}
	if r.TLS != nil {
		return "https"
	}
	if r.URL != nil && strings.EqualFold(strings.TrimSpace(r.URL.Scheme), "https") {
		return "https"
	}
	return "http"
}

// SecureCookies reports whether cookies written for r should be marked Secure.
func (p SchemePolicy) SecureCookies(r *http.Request) bool {
	return p.Scheme(r) == "https"
}

// IsHTTPS reports whether r itself arrived over HTTPS, ignoring proxy headers.
func IsHTTPS(r *http.Request) bool {
	return SchemePolicy{}.SecureCookies(r)
}

// forwardedProto reads X-Forwarded-Proto, then the proto parameter of the
// first Forwarded element. Only the first hop counts.
func forwardedProto(h http.Header) string {
	if value := h.Get("X-Forwarded-Proto"); value != "" {
		first, _, _ := strings.Cut(value, ",")
		return normalizeProto(first)
	}
	element, _, _ := strings.Cut(h.Get("Forwarded"), ",")
	for _, pair := range strings.Split(element, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && strings.EqualFold(key, "proto") {
			return normalizeProto(strings.Trim(value, `"`))
		}
	}
	return ""
}

func normalizeProto(value string) string {
	switch proto := strings.ToLower(strings.TrimSpace(value)); proto {
	case "http", "https":
		return proto
	default:
		return ""
	}
}
