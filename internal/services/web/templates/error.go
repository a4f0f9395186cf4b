package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorView is the shared error page model.
type ErrorView struct {
	StatusCode int
	Message    string
	BackURL    string
}

// ErrorState renders the shared error page body.
func ErrorState(view ErrorView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<section class=\"error-state\"")
		w.attr("data-status", strconv.Itoa(view.StatusCode))
		w.raw("><h1>")
		w.text(T(loc, "web.error.title"))
		w.raw("</h1><p>")
		w.text(view.Message)
		w.raw("</p>")
		if view.BackURL != "" {
			w.raw("<a")
			w.href(view.BackURL)
			w.raw(">")
			w.text(T(loc, "web.error.back"))
			w.raw("</a>")
		}
		w.raw("</section>")
		return w.err
	})
}
