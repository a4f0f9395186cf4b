// Package layoutflag stores document-level presentation flags in cookies so
// one page can toggle layout chrome that a sibling page later releases.
package layoutflag

import (
	"net/http"
	"strings"
	"sync"

	"github.com/louisbranch/onboarding/internal/services/web/platform/requestmeta"
)

// cookiePrefix namespaces layout flag cookies.
const cookiePrefix = "onb_layout_"

// Flag names one layout flag.
type Flag string

// Narrow constrains the page body to a narrow reading column.
const Narrow Flag = "narrow"

func (f Flag) valid() bool {
	return f == Narrow
}

// CookieName returns the cookie carrying flag.
func CookieName(flag Flag) string {
	return cookiePrefix + string(flag)
}

// Set persists flag for subsequent page renders.
func Set(w http.ResponseWriter, r *http.Request, flag Flag, policy requestmeta.SchemePolicy) {
	if w == nil || !flag.valid() {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(flag),
		Value:    "1",
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.SecureCookies(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Has reports whether the request carries flag.
func Has(r *http.Request, flag Flag) bool {
	if r == nil || !flag.valid() {
		return false
	}
	cookie, err := r.Cookie(CookieName(flag))
	if err != nil || cookie == nil {
		return false
	}
	return strings.TrimSpace(cookie.Value) == "1"
}

// Clear expires flag.
func Clear(w http.ResponseWriter, r *http.Request, flag Flag, policy requestmeta.SchemePolicy) {
	if w == nil || !flag.valid() {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(flag),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.SecureCookies(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Scope holds a flag for the lifetime of one handler invocation.
//
// A scope holds its flag only when the request carried it. The flag is active
// from Acquire until Release. Release expires a held cookie and runs at most
// once; a response written through ResponseWriter releases the scope before
// headers are sent.
type Scope struct {
	w      http.ResponseWriter
	r      *http.Request
	flag   Flag
	policy requestmeta.SchemePolicy
	held   bool

	mu       sync.Mutex
	released bool
}

// Acquire takes over flag from the request for the current handler.
func Acquire(w http.ResponseWriter, r *http.Request, flag Flag, policy requestmeta.SchemePolicy) *Scope {
	return &Scope{w: w, r: r, flag: flag, policy: policy, held: Has(r, flag)}
}

// Active reports whether the scope still holds its flag.
func (s *Scope) Active() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held && !s.released
}

// Release drops the flag. Calls after the first are no-ops, and a scope that
// never held the flag writes no cookie.
func (s *Scope) Release() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	if s.held {
		Clear(s.w, s.r, s.flag, s.policy)
	}
}

// ResponseWriter returns a writer that releases the scope before the first
// header or body write.
func (s *Scope) ResponseWriter() http.ResponseWriter {
	return &releasingWriter{ResponseWriter: s.w, scope: s}
}

type releasingWriter struct {
	http.ResponseWriter
	scope *Scope
}

func (w *releasingWriter) WriteHeader(status int) {
	w.scope.Release()
	w.ResponseWriter.WriteHeader(status)
}

func (w *releasingWriter) Write(p []byte) (int, error) {
	w.scope.Release()
	return w.ResponseWriter.Write(p)
}

func (w *releasingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
