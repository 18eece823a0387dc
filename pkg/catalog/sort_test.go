package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanfeng/connhub-cli/internal/testutil"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

func names(records []models.Application) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.DisplayName)
	}
	return out
}

func TestSort_AlphabeticalIsLocaleAware(t *testing.T) {
	records := []models.Application{
		testutil.NewApplication("zendesk"),
		testutil.NewApplication("Élan"),
		testutil.NewApplication("Azure AD"),
		testutil.NewApplication("active directory"),
	}
	got := Sort(records, SortAlphabetical)
	assert.Equal(t, []string{"active directory", "Azure AD", "Élan", "zendesk"}, names(got))
	assert.Equal(t, "zendesk", records[0].DisplayName, "input must not be reordered")
}

func TestSort_OrderIndependentForDistinctKeys(t *testing.T) {
	a := testutil.NewApplication("Alpha")
	b := testutil.NewApplication("Beta")
	c := testutil.NewApplication("Gamma")
	want := []string{"Alpha", "Beta", "Gamma"}

	perms := [][]models.Application{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, p := range perms {
		assert.Equal(t, want, names(Sort(p, SortAlphabetical)))
	}
}

func TestSort_StableOnTies(t *testing.T) {
	records := []models.Application{
		testutil.NewApplication("c", testutil.WithState(models.LifecycleRequested)),
		testutil.NewApplication("b"),
		testutil.NewApplication("a", testutil.WithState(models.LifecycleWithError)),
		testutil.NewApplication("d", testutil.Popular()),
		testutil.NewApplication("e"),
	}

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortActivity, []string{"b", "d", "e", "c", "a"}},
		{SortPopularity, []string{"d", "c", "b", "a", "e"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, names(Sort(records, tt.key)))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey(" Popularity ")
	require.NoError(t, err)
	assert.Equal(t, SortPopularity, key)

	key, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortAlphabetical, key)

	_, err = ParseSortKey("newest")
	assert.Error(t, err)
}
