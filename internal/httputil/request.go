package httputil

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"
)

// RequestedLocales extracts the caller's ordered locale preferences from a
// request. An explicit ?locale= query parameter always wins and yields a
// single-entry list; otherwise every Accept-Language tag is kept, strongest
// first. Returns nil when the request expresses no preference, letting the
// fallback policy decide.
func RequestedLocales(r *http.Request) ([]string, error) {
	if loc := r.URL.Query().Get("locale"); loc != "" {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", loc, err)
		}
		return []string{canonicalBase(tag)}, nil
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		// A malformed Accept-Language is the browser's problem, not a 400:
		// ignore it and fall through to the default policy.
		if err == nil {
			var locales []string
			seen := make(map[string]bool)
			for _, tag := range tags {
				base := canonicalBase(tag)
				if seen[base] {
					continue
				}
				seen[base] = true
				locales = append(locales, base)
			}
			return locales, nil
		}
	}

	return nil, nil
}

// NegotiateLocale picks the best available locale for an ordered preference
// list. Returns the empty string when nothing available matches.
func NegotiateLocale(preferred, available []string) string {
	if len(preferred) == 0 || len(available) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(available))
	valid := make([]string, 0, len(available))
	for _, a := range available {
		tag, err := language.Parse(a)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		valid = append(valid, a)
	}
	if len(tags) == 0 {
		return ""
	}

	want := make([]language.Tag, 0, len(preferred))
	for _, p := range preferred {
		tag, err := language.Parse(p)
		if err != nil {
			continue
		}
		want = append(want, tag)
	}
	if len(want) == 0 {
		return ""
	}

	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(want...)
	if conf == language.No {
		return ""
	}
	return valid[idx]
}

// canonicalBase reduces a parsed tag to its base language ("en-US" -> "en").
// Content locales are plain base languages per the file layout.
func canonicalBase(tag language.Tag) string {
	base, conf := tag.Base()
	if conf == language.No {
		return tag.String()
	}
	return base.String()
}
