package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ChecklistItem is one onboarding task row.
type ChecklistItem struct {
	ID          int
	Title       string
	Description string
	URL         string
	External    bool
	Skippable   bool
	Requires    []string
}

// ChecklistView is the onboarding checklist page model.
type ChecklistView struct {
	OrganizationName string
	Items            []ChecklistItem
}

// ChecklistPage renders every onboarding task in order.
func ChecklistPage(view ChecklistView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<section class=\"onboarding-checklist\"><h1>")
		w.text(T(loc, "web.checklist.heading", view.OrganizationName))
		w.raw("</h1><ol class=\"task-list\">")
		for _, item := range view.Items {
			w.raw("<li")
			w.attr("data-task", strconv.Itoa(item.ID))
			w.raw("><a")
			w.href(item.URL)
			if item.External {
				w.attr("rel", "noopener")
				w.attr("target", "_blank")
			}
			w.raw(">")
			w.text(item.Title)
			w.raw("</a>")
			if item.Skippable {
				w.raw(" <span class=\"optional\">")
				w.text(T(loc, "web.checklist.optional"))
				w.raw("</span>")
			}
			if item.Description != "" {
				w.raw("<p>")
				w.text(item.Description)
				w.raw("</p>")
			}
			if len(item.Requires) > 0 {
				w.raw("<p class=\"requires\">")
				w.text(T(loc, "web.checklist.requires", strings.Join(item.Requires, ", ")))
				w.raw("</p>")
			}
			w.raw("</li>")
		}
		w.raw("</ol></section>")
		return w.err
	})
}
