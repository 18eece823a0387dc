package catalog

import (
	"slices"
	"strings"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// TabAll is the category tab that applies no constraint.
const TabAll = "all"

// Dimension names one multi-select filter group.
type Dimension int

const (
	DimensionCategories Dimension = iota
	DimensionCapabilities
	DimensionAppStatus
	DimensionMidpointVersions
)

var dimensionNames = map[Dimension]string{
	DimensionCategories:       "categories",
	DimensionCapabilities:     "capabilities",
	DimensionAppStatus:        "appStatus",
	DimensionMidpointVersions: "midpointVersions",
}

func (d Dimension) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return "unknown"
}

// FilterState is an immutable snapshot of the active filters. Mutators
// return a new value and never touch the receiver's slices.
type FilterState struct {
	Trending         bool     `json:"trending"`
	Categories       []string `json:"categories"`
	Capabilities     []string `json:"capabilities"`
	AppStatus        []string `json:"appStatus"`
	MidpointVersions []string `json:"midpointVersions"`
}

// IsEmpty reports whether no filter is active
func (f FilterState) IsEmpty() bool {
	return !f.Trending &&
		len(f.Categories) == 0 &&
		len(f.Capabilities) == 0 &&
		len(f.AppStatus) == 0 &&
		len(f.MidpointVersions) == 0
}

// Equal reports whether both states select the same values. A nil and an
// empty dimension are equal.
func (f FilterState) Equal(other FilterState) bool {
	return f.Trending == other.Trending &&
		slices.Equal(f.Categories, other.Categories) &&
		slices.Equal(f.Capabilities, other.Capabilities) &&
		slices.Equal(f.AppStatus, other.AppStatus) &&
		slices.Equal(f.MidpointVersions, other.MidpointVersions)
}

// Clone returns a state that shares no slices with f
func (f FilterState) Clone() FilterState {
	f.Categories = slices.Clone(f.Categories)
	f.Capabilities = slices.Clone(f.Capabilities)
	f.AppStatus = slices.Clone(f.AppStatus)
	f.MidpointVersions = slices.Clone(f.MidpointVersions)
	return f
}

// Values returns the selected values of a dimension
func (f FilterState) Values(d Dimension) []string {
	switch d {
	case DimensionCategories:
		return f.Categories
	case DimensionCapabilities:
		return f.Capabilities
	case DimensionAppStatus:
		return f.AppStatus
	case DimensionMidpointVersions:
		return f.MidpointVersions
	}
	return nil
}

// Has reports whether value is selected in d
func (f FilterState) Has(d Dimension, value string) bool {
	return slices.Contains(f.Values(d), value)
}

func (f FilterState) with(d Dimension, values []string) FilterState {
	switch d {
	case DimensionCategories:
		f.Categories = values
	case DimensionCapabilities:
		f.Capabilities = values
	case DimensionAppStatus:
		f.AppStatus = values
	case DimensionMidpointVersions:
		f.MidpointVersions = values
	}
	return f
}

// Add selects value in d
func (f FilterState) Add(d Dimension, value string) FilterState {
	if f.Has(d, value) {
		return f
	}
	cur := f.Values(d)
	next := make([]string, 0, len(cur)+1)
	next = append(next, cur...)
	return f.with(d, append(next, value))
}

// Remove deselects value in d
func (f FilterState) Remove(d Dimension, value string) FilterState {
	if !f.Has(d, value) {
		return f
	}
	cur := f.Values(d)
	next := make([]string, 0, len(cur)-1)
	for _, v := range cur {
		if v != value {
			next = append(next, v)
		}
	}
	return f.with(d, next)
}

// Toggle flips the selection of value in d
func (f FilterState) Toggle(d Dimension, value string) FilterState {
	if f.Has(d, value) {
		return f.Remove(d, value)
	}
	return f.Add(d, value)
}

// Clear drops every selection in d
func (f FilterState) Clear(d Dimension) FilterState {
	return f.with(d, nil)
}

// WithTrending sets the trending flag
func (f FilterState) WithTrending(on bool) FilterState {
	f.Trending = on
	return f
}

// Criteria is everything that decides whether a record is listed
type Criteria struct {
	Query   string
	Tab     string
	Filters FilterState
}

// IsActive reports whether any constraint is set
func (c Criteria) IsActive() bool {
	return strings.TrimSpace(c.Query) != "" || !isAllTab(c.Tab) || !c.Filters.IsEmpty()
}

// Predicate decides whether a record passes one constraint
type Predicate func(app *models.Application) bool

// Predicates returns the active constraints. Inactive dimensions are left
// out, so an empty result keeps every record.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate

	if q := strings.TrimSpace(c.Query); q != "" {
		needle := strings.ToLower(q)
		preds = append(preds, func(app *models.Application) bool {
			return matchesQuery(app, needle)
		})
	}
	if !isAllTab(c.Tab) {
		tab := c.Tab
		preds = append(preds, func(app *models.Application) bool {
			return MatchesTab(app, tab)
		})
	}

	f := c.Filters
	if f.Trending {
		preds = append(preds, IsTrending)
	}
	if len(f.Categories) > 0 {
		selected := f.Categories
		preds = append(preds, func(app *models.Application) bool {
			return hasCategory(app, selected)
		})
	}
	if len(f.Capabilities) > 0 {
		selected := f.Capabilities
		preds = append(preds, func(app *models.Application) bool {
			return containsAny(app.Capabilities, selected)
		})
	}
	if len(f.AppStatus) > 0 {
		selected := f.AppStatus
		preds = append(preds, func(app *models.Application) bool {
			return slices.Contains(selected, string(app.LifecycleState))
		})
	}
	if len(f.MidpointVersions) > 0 {
		selected := f.MidpointVersions
		preds = append(preds, func(app *models.Application) bool {
			return containsAny(app.MidpointVersions, selected)
		})
	}
	return preds
}

// Matches applies every active constraint to app
func (c Criteria) Matches(app *models.Application) bool {
	for _, p := range c.Predicates() {
		if !p(app) {
			return false
		}
	}
	return true
}

// Filter returns the records passing every constraint, in input order
func Filter(records []models.Application, c Criteria) []models.Application {
	preds := c.Predicates()
	out := make([]models.Application, 0, len(records))
next:
	for i := range records {
		for _, p := range preds {
			if !p(&records[i]) {
				continue next
			}
		}
		out = append(out, records[i])
	}
	return out
}

// MatchesQuery reports whether app contains query as a case-insensitive
// substring of its text fields or tag names. A blank query matches.
func MatchesQuery(app *models.Application, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	return matchesQuery(app, strings.ToLower(q))
}

func matchesQuery(app *models.Application, needle string) bool {
	fields := []string{
		app.DisplayName,
		app.Description,
		string(app.LifecycleState),
		app.RiskLevel,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	for _, t := range app.AllTags() {
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.DisplayName), needle) {
			return true
		}
	}
	return false
}

// MatchesTab reports whether app has a category whose display name is tab
func MatchesTab(app *models.Application, tab string) bool {
	if isAllTab(tab) {
		return true
	}
	for _, c := range app.Categories {
		if c.DisplayName == tab {
			return true
		}
	}
	return false
}

// IsTrending reports whether app carries the popular tag in any casing
func IsTrending(app *models.Application) bool {
	for _, t := range app.AllTags() {
		if strings.EqualFold(t.Name, models.TagPopular) {
			return true
		}
	}
	return false
}

func hasCategory(app *models.Application, selected []string) bool {
	for _, t := range app.AllTags() {
		if t.TagType != models.TagTypeCategory && t.TagType != models.TagTypeDeployment {
			continue
		}
		if slices.Contains(selected, t.Name) {
			return true
		}
	}
	return false
}

func containsAny(have, want []string) bool {
	for _, v := range have {
		if slices.Contains(want, v) {
			return true
		}
	}
	return false
}

func isAllTab(tab string) bool {
	return tab == "" || strings.EqualFold(tab, TabAll)
}
