// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/onboarding/internal/platform/branding"
	"github.com/louisbranch/onboarding/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/onboarding/internal/services/web/templates"
	"golang.org/x/text/language"
)

const appNameKey = "core.app_name"

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Narrow     bool
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page into a buffer and writes it only when rendering
// succeeds. HTMX requests receive the body fragment without the document shell.
func WritePage(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, tag language.Tag, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		return httpx.WriteHTML(w, statusCode, buf.Bytes())
	}

	appName := webtemplates.T(loc, appNameKey)
	if appName == "" || appName == appNameKey {
		appName = branding.AppName
	}
	layout := webtemplates.Layout(webtemplates.LayoutOptions{
		Title:   page.Title,
		Lang:    tag.String(),
		AppName: appName,
		Narrow:  page.Narrow,
	})
	if err := layout.Render(templ.WithChildren(ctx, body), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.Bytes())
}
