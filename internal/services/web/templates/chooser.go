package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ChooserRow is one clickable project.
type ChooserRow struct {
	Name string
	Slug string
	URL  string
}

// ChooserView is the project chooser page model.
type ChooserView struct {
	OrganizationName string
	TaskTitle        string
	Rows             []ChooserRow
}

// ChooserPage renders the project list for one onboarding task.
func ChooserPage(view ChooserView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<section class=\"project-chooser\"><h1>")
		w.text(T(loc, "web.chooser.heading"))
		w.raw("</h1><p class=\"subtitle\">")
		w.text(T(loc, "web.chooser.subtitle", view.TaskTitle))
		w.raw("</p>")
		if len(view.Rows) == 0 {
			w.raw("<p class=\"empty\">")
			w.text(T(loc, "web.chooser.empty"))
			w.raw("</p></section>")
			return w.err
		}
		w.raw("<ul class=\"project-list\">")
		for _, row := range view.Rows {
			w.raw("<li")
			w.attr("data-project", row.Slug)
			w.raw("><a")
			w.href(row.URL)
			w.raw(">")
			w.text(row.Name)
			w.raw("</a></li>")
		}
		w.raw("</ul></section>")
		return w.err
	})
}
