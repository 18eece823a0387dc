package wizard

import (
	"strings"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// MatchCountry resolves an origin against the reference country list.
// It tries an exact name match on display, then on raw (or the official
// name), then a substring match in either direction. An unmatched origin
// yields a synthetic entry named after display.
func MatchCountry(display, raw string, countries []models.Country) models.Country {
	d := strings.ToLower(strings.TrimSpace(display))
	r := strings.ToLower(strings.TrimSpace(raw))

	for _, c := range countries {
		if d != "" && strings.ToLower(c.Name) == d {
			return c
		}
	}
	for _, c := range countries {
		name, official := strings.ToLower(c.Name), strings.ToLower(c.Official)
		if r != "" && (name == r || official == r) {
			return c
		}
		if d != "" && official == d {
			return c
		}
	}
	if d != "" {
		for _, c := range countries {
			name := strings.ToLower(c.Name)
			if name == "" {
				continue
			}
			if strings.Contains(name, d) || strings.Contains(d, name) {
				return c
			}
		}
	}
	return models.Country{Name: strings.TrimSpace(display)}
}

// MatchOrigins resolves every origin of an application
func MatchOrigins(origins []models.CountryOfOrigin, countries []models.Country) []models.Country {
	out := make([]models.Country, 0, len(origins))
	for _, o := range origins {
		display := o.DisplayName
		if display == "" {
			display = o.Name
		}
		out = append(out, MatchCountry(display, o.Name, countries))
	}
	return out
}

// CountryNames returns the names of countries
func CountryNames(countries []models.Country) []string {
	names := make([]string, 0, len(countries))
	for _, c := range countries {
		names = append(names, c.Name)
	}
	return names
}
