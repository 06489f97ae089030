package continent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMarker is returned when a country token has no continent marker
// anywhere before it in the membership list. The scraped source guarantees
// this cannot happen, so hitting it means the list is corrupt.
var ErrNoMarker = errors.New("country token has no preceding continent marker")

// markers maps the uppercase continent headings found in the scraped page
// to the labels used in the dataset.
var markers = []struct {
	Match string
	Label string
}{
	{"AFRICA", "Africa"},
	{"ASIA", "Asia"},
	{"EUROPE", "Europe"},
	{"N. AMERICA", "North America"},
	{"OCEANIA", "Oceania"},
	{"S. AMERICA", "South America"},
}

// Other labels countries that are not in the membership list, typically
// dependent territories absent from the independent-nations page. Rows
// labeled Other are dropped before analysis.
const Other = "Other"

// Labels returns every continent label the resolver can produce,
// Other included.
func Labels() []string {
	out := make([]string, 0, len(markers)+1)
	for _, m := range markers {
		out = append(out, m.Label)
	}
	return append(out, Other)
}

// markerLabel returns the continent label if the token is a continent
// heading, matched case-sensitively by substring.
func markerLabel(token string) (string, bool) {
	for _, m := range markers {
		if strings.Contains(token, m.Match) {
			return m.Label, true
		}
	}
	return "", false
}

// Resolve maps a country name to its continent label using the normalized
// membership list: the list is segmented into runs, each starting with a
// continent heading followed by the countries that belong to it, so the
// country's continent is the nearest heading before its first occurrence.
//
// A country absent from the list resolves to Other. A country present with
// no heading before it means the list is corrupt and yields ErrNoMarker.
func Resolve(country string, tokens []string) (string, error) {
	at := -1
	for i, t := range tokens {
		if t == country {
			at = i
			break
		}
	}
	if at < 0 {
		return Other, nil
	}

	for i := at - 1; i >= 0; i-- {
		if label, ok := markerLabel(tokens[i]); ok {
			return label, nil
		}
	}
	return "", fmt.Errorf("resolving %q at position %d: %w", country, at, ErrNoMarker)
}

// CheckIntegrity reports problems Resolve tolerates or only hits lazily:
// country tokens before the first heading, and duplicate country tokens.
// Resolution uses the first occurrence of a duplicate; callers wanting
// strictness can run this once after scraping.
func CheckIntegrity(tokens []string) error {
	seen := make(map[string]int, len(tokens))
	sawMarker := false

	for i, t := range tokens {
		if _, ok := markerLabel(t); ok {
			sawMarker = true
			continue
		}
		if !sawMarker {
			return fmt.Errorf("token %q at position %d: %w", t, i, ErrNoMarker)
		}
		if first, dup := seen[t]; dup {
			return fmt.Errorf("duplicate country token %q at positions %d and %d", t, first, i)
		}
		seen[t] = i
	}
	return nil
}
