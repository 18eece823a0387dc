package catalog

import (
	"slices"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FacetCount is the number of records carrying one filter value
type FacetCount struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Count       int    `json:"count"`
}

// Facets summarizes the filter values present in a record list
type Facets struct {
	Total            int          `json:"total"`
	Trending         int          `json:"trending"`
	Active           int          `json:"active"`
	Categories       []FacetCount `json:"categories"`
	Capabilities     []FacetCount `json:"capabilities"`
	Statuses         []FacetCount `json:"statuses"`
	MidpointVersions []FacetCount `json:"midpointVersions"`
}

// BuildFacets counts every filter value over records
func BuildFacets(records []models.Application) Facets {
	f := Facets{
		Total:    len(records),
		Trending: Count(records, IsTrending),
		Active:   Count(records, isActive),
	}

	for _, cat := range AvailableCategories(records) {
		f.Categories = append(f.Categories, FacetCount{
			Name:        cat.Name,
			DisplayName: cat.DisplayName,
			Count:       CountCategory(records, cat.Name),
		})
	}
	for _, capability := range models.Capabilities {
		n := Count(records, func(app *models.Application) bool {
			return slices.Contains(app.Capabilities, capability)
		})
		if n == 0 {
			continue
		}
		f.Capabilities = append(f.Capabilities, FacetCount{
			Name:        capability,
			DisplayName: FormatCapability(capability),
			Count:       n,
		})
	}
	for _, state := range models.LifecycleStates {
		f.Statuses = append(f.Statuses, FacetCount{
			Name:        string(state),
			DisplayName: FormatLifecycle(state),
			Count: Count(records, func(app *models.Application) bool {
				return app.LifecycleState == state
			}),
		})
	}
	for _, v := range MidpointVersions(records) {
		f.MidpointVersions = append(f.MidpointVersions, FacetCount{
			Name:        v,
			DisplayName: v,
			Count: Count(records, func(app *models.Application) bool {
				return slices.Contains(app.MidpointVersions, v)
			}),
		})
	}
	return f
}

// Count returns how many records satisfy pred
func Count(records []models.Application, pred Predicate) int {
	n := 0
	for i := range records {
		if pred(&records[i]) {
			n++
		}
	}
	return n
}

// CountCategory counts records tagged with the category or deployment tag name
func CountCategory(records []models.Application, name string) int {
	return Count(records, func(app *models.Application) bool {
		return hasCategory(app, []string{name})
	})
}

// AvailableCategories returns the distinct CATEGORY and DEPLOYMENT tags of
// records ordered by display name
func AvailableCategories(records []models.Application) []models.Tag {
	seen := make(map[string]bool)
	var out []models.Tag
	for i := range records {
		for _, t := range records[i].AllTags() {
			if t.TagType != models.TagTypeCategory && t.TagType != models.TagTypeDeployment {
				continue
			}
			if seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			out = append(out, t)
		}
	}
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].DisplayName, out[j].DisplayName) < 0
	})
	return out
}

// CategoryDisplayName resolves a tag name to its display name, falling
// back to the name itself
func CategoryDisplayName(records []models.Application, name string) string {
	for i := range records {
		for _, t := range records[i].AllTags() {
			if t.Name == name && t.DisplayName != "" {
				return t.DisplayName
			}
		}
	}
	return name
}

// MidpointVersions returns every distinct midPoint version of records.
// Semantic versions sort numerically and come before anything unparseable.
func MidpointVersions(records []models.Application) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range records {
		for _, v := range records[i].MidpointVersions {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	SortVersions(out)
	return out
}

// SortVersions orders version strings in place
func SortVersions(versions []string) {
	parsed := make(map[string]*semver.Version, len(versions))
	for _, v := range versions {
		if sv, err := semver.NewVersion(v); err == nil {
			parsed[v] = sv
		}
	}
	sort.SliceStable(versions, func(i, j int) bool {
		a, aok := parsed[versions[i]]
		b, bok := parsed[versions[j]]
		switch {
		case aok && bok:
			if c := a.Compare(b); c != 0 {
				return c < 0
			}
			return versions[i] < versions[j]
		case aok != bok:
			return aok
		}
		return versions[i] < versions[j]
	})
}
