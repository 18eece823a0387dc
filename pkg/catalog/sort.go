package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huanfeng/connhub-cli/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the list ordering
type SortKey string

const (
	SortAlphabetical SortKey = "alphabetical"
	SortPopularity   SortKey = "popularity"
	SortActivity     SortKey = "activity"
)

// SortKeys lists the supported orderings
var SortKeys = []SortKey{SortAlphabetical, SortPopularity, SortActivity}

// ParseSortKey accepts a sort key in any casing
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortAlphabetical, SortPopularity, SortActivity:
		return key, nil
	case "":
		return SortAlphabetical, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Sorter orders records using the collation rules of one locale
type Sorter struct {
	locale language.Tag
}

// NewSorter creates a sorter for locale; an unparseable locale falls back
// to English.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Sorter{locale: tag}
}

// Sort returns a sorted copy of records. The sort is stable, so ties keep
// their input order.
func (s *Sorter) Sort(records []models.Application, key SortKey) []models.Application {
	out := make([]models.Application, len(records))
	copy(out, records)

	switch key {
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			return IsTrending(&out[i]) && !IsTrending(&out[j])
		})
	case SortActivity:
		sort.SliceStable(out, func(i, j int) bool {
			return isActive(&out[i]) && !isActive(&out[j])
		})
	default:
		// collate.Collator is not safe for concurrent use
		col := collate.New(s.locale)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].DisplayName, out[j].DisplayName) < 0
		})
	}
	return out
}

// Sort orders records with English collation
func Sort(records []models.Application, key SortKey) []models.Application {
	return NewSorter("en").Sort(records, key)
}

func isActive(app *models.Application) bool {
	return app.LifecycleState == models.LifecycleActive
}
