package templates

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// Localizer translates catalog keys. *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// keyEcho formats the key itself; used when no localizer is available.
type keyEcho struct{}

func (keyEcho) Sprintf(key message.Reference, args ...any) string {
	format, _ := key.(string)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// T translates key with loc, echoing the key when loc is nil.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		loc = keyEcho{}
	}
	return loc.Sprintf(key, args...)
}

// writer accumulates the first write error so component bodies stay linear.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) attr(name string, value string) {
	w.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (w *writer) href(url string) {
	w.attr("href", string(templ.URL(url)))
}
