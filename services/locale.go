package services

import (
	"strings"

	"golang.org/x/text/language"
)

// PrimaryLanguage returns the primary language subtag of a locale as written,
// lowercased, e.g. "en" for "en-US" and "iw" for "iw-IL". Deprecated subtags
// are not replaced by their modern forms.
func PrimaryLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, "-_"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}

// PreferredLocale picks the highest weighted tag of an Accept-Language header,
// keeping the tag text as sent. It returns fallback when the header is empty,
// unparsable or only names the wildcard.
func PreferredLocale(acceptLanguage, fallback string) string {
	best, bestQ := "", float32(0)
	for _, entry := range strings.Split(acceptLanguage, ",") {
		raw := strings.TrimSpace(strings.SplitN(entry, ";", 2)[0])
		if raw == "" || raw == "*" {
			continue
		}
		tags, weights, err := language.ParseAcceptLanguage(entry)
		if err != nil || len(tags) == 0 || tags[0] == language.Und {
			continue
		}
		if weights[0] > bestQ {
			best, bestQ = raw, weights[0]
		}
	}
	if best == "" {
		return fallback
	}
	return best
}
