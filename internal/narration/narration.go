package narration

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TransactionDateMarker starts the card-payment date suffix of a title.
const TransactionDateMarker = "DATA TRANSAKCJI"

// ErrEmpty is returned when neither title nor description yield text.
var ErrEmpty = errors.New("empty narration")

// ignoredLocations are second title segments that are not useful places:
// card network artifacts, URL fragments, and cities too generic to help.
var ignoredLocations = map[string]struct{}{
	"POZNAN":     {},
	"LONDON":     {},
	"GBR":        {},
	"VILNIUS":    {},
	"INTERNET":   {},
	"AMSTERDAM":  {},
	"BOURNEMOUT": {},
	"DUBLIN":     {},
	"HTTPSABSOL": {},
	"O":          {},
	"RFB":        {},
	"UD":         {},
	"SZEMUD":     {},
}

// Location returns the segment after the first '/' of title when it names
// a usable place, or "".
func Location(title string) string {
	parts := strings.Split(title, "/")
	if len(parts) < 2 {
		return ""
	}
	candidate := parts[1]
	if _, ignored := ignoredLocations[strings.ToUpper(candidate)]; ignored {
		return ""
	}
	if !isAlpha(candidate) {
		return ""
	}
	return candidate
}

// Derive returns the narration and title-cased location for a row.
// An empty title falls back to the description with no location.
func Derive(title, description string) (string, string, error) {
	if title == "" {
		if description == "" {
			return "", "", ErrEmpty
		}
		return description, "", nil
	}

	if i := strings.Index(title, TransactionDateMarker); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)

	location := Location(title)
	if location != "" {
		title = strings.TrimSpace(strings.ReplaceAll(title, "/"+location, ""))
		location = cases.Title(language.Polish).String(location)
	}
	if title == "" {
		return "", "", ErrEmpty
	}
	return title, location, nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
