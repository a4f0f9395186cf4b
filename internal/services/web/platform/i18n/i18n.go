// Package i18n resolves the request language and localizer for web pages.
package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/onboarding/internal/platform/i18n/catalog"
	"github.com/louisbranch/onboarding/internal/services/web/routepath"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Resolver picks a supported language for each request.
type Resolver struct {
	bundle  *catalog.Bundle
	tags    []language.Tag
	matcher language.Matcher
}

// NewResolver builds a resolver over the bundle's locales. A nil bundle
// resolves every request to the base locale.
func NewResolver(bundle *catalog.Bundle) *Resolver {
	tags := bundle.Tags()
	if len(tags) == 0 {
		tags = []language.Tag{language.MustParse(catalog.BaseLocale)}
	}
	return &Resolver{
		bundle:  bundle,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}
}

// ResolveTag returns the supported tag for r, preferring the lang query
// parameter over Accept-Language.
func (res *Resolver) ResolveTag(r *http.Request) language.Tag {
	if res == nil {
		return language.MustParse(catalog.BaseLocale)
	}
	if r == nil {
		return res.tags[0]
	}
	var preferred []language.Tag
	if r.URL != nil {
		if raw := strings.TrimSpace(r.URL.Query().Get(routepath.LanguageQueryKey)); raw != "" {
			if tag, err := language.Parse(raw); err == nil {
				preferred = append(preferred, tag)
			}
		}
	}
	if accepted, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
		preferred = append(preferred, accepted...)
	}
	if len(preferred) == 0 {
		return res.tags[0]
	}
	_, idx, confidence := res.matcher.Match(preferred...)
	if confidence == language.No {
		return res.tags[0]
	}
	return res.tags[idx]
}

// Printer returns the localizer for tag.
func (res *Resolver) Printer(tag language.Tag) *message.Printer {
	if res == nil {
		return message.NewPrinter(tag)
	}
	return res.bundle.Printer(tag)
}

// ResolveLocalizer resolves the localizer and tag for r in one step.
func (res *Resolver) ResolveLocalizer(r *http.Request) (*message.Printer, language.Tag) {
	tag := res.ResolveTag(r)
	return res.Printer(tag), tag
}

// Text formats key, falling back to fallback when the catalog has no entry.
func Text(loc Localizer, key string, fallback string, args ...any) string {
	if loc != nil {
		value := strings.TrimSpace(loc.Sprintf(key, args...))
		if value != "" && value != key {
			return value
		}
	}
	if fallback == "" {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(fallback, args...)
	}
	return fallback
}
