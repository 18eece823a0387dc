package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanfeng/connhub-cli/internal/testutil"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

func TestBuildFacets(t *testing.T) {
	f := BuildFacets(filterFixture())

	assert.Equal(t, 4, f.Total)
	assert.Equal(t, 2, f.Trending)
	assert.Equal(t, 2, f.Active)

	// CLOUD_BASED, Communication, Directory, Human resources, ON_PREMISE
	require.Len(t, f.Categories, 5)
	assert.Equal(t, "CLOUD_BASED", f.Categories[0].Name)
	assert.Equal(t, "HR", f.Categories[3].Name)
	assert.Equal(t, 1, f.Categories[3].Count)

	require.Len(t, f.Capabilities, 2)
	assert.Equal(t, FacetCount{Name: "CREATE", DisplayName: "Create", Count: 2}, f.Capabilities[0])
	assert.Equal(t, "Live Sync", f.Capabilities[1].DisplayName)

	require.Len(t, f.Statuses, len(models.LifecycleStates))
	assert.Equal(t, "Active", f.Statuses[0].DisplayName)

	require.Len(t, f.MidpointVersions, 2)
	assert.Equal(t, FacetCount{Name: "4.9", DisplayName: "4.9", Count: 2}, f.MidpointVersions[1])
}

func TestMidpointVersions_SemverOrder(t *testing.T) {
	records := []models.Application{
		testutil.NewApplication("a", testutil.WithMidpointVersions("4.10", "4.9", "master")),
		testutil.NewApplication("b", testutil.WithMidpointVersions("4.8.1", "4.9", "")),
	}
	assert.Equal(t, []string{"4.8.1", "4.9", "4.10", "master"}, MidpointVersions(records))
}

func TestCategoryDisplayName(t *testing.T) {
	records := filterFixture()
	assert.Equal(t, "Human resources", CategoryDisplayName(records, "HR"))
	assert.Equal(t, "UNKNOWN", CategoryDisplayName(records, "UNKNOWN"))
}
