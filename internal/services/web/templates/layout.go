// Package templates renders the onboarding HTML pages.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// NarrowBodyClass is the body class toggled by the narrow layout flag.
const NarrowBodyClass = "narrow"

// LayoutOptions configures the document shell.
type LayoutOptions struct {
	Title   string
	Lang    string
	AppName string
	Narrow  bool
}

func (o LayoutOptions) documentTitle() string {
	title := strings.TrimSpace(o.Title)
	app := strings.TrimSpace(o.AppName)
	switch {
	case title == "":
		return app
	case app == "":
		return title
	default:
		return title + " | " + app
	}
}

// Layout renders the document shell around the children in ctx.
func Layout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<!DOCTYPE html><html")
		if lang := strings.TrimSpace(opts.Lang); lang != "" {
			w.attr("lang", lang)
		}
		w.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		w.text(opts.documentTitle())
		w.raw("</title></head><body")
		if opts.Narrow {
			w.attr("class", NarrowBodyClass)
		}
		w.raw("><main id=\"main\">")
		if w.err != nil {
			return w.err
		}
		if err := templ.GetChildren(ctx).Render(ctx, out); err != nil {
			return err
		}
		w.raw("</main></body></html>")
		return w.err
	})
}
