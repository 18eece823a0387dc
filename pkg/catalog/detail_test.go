package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

func versionFixture() []models.ImplementationVersion {
	return []models.ImplementationVersion{
		{ID: "1", Author: "Evolveum s.r.o.", LifecycleState: models.LifecycleActive, MidpointVersion: "4.9", Capabilities: []string{"CREATE"}},
		{ID: "2", Author: "community", LifecycleState: models.LifecycleActive, MidpointVersion: "4.8", Capabilities: []string{"READ"}},
		{ID: "3", Author: "EVOLVEUM", LifecycleState: models.LifecycleWithError},
		{ID: "4", Author: "", LifecycleState: models.LifecycleRequested, MidpointVersion: "4.9"},
	}
}

func versionIDs(vs []models.ImplementationVersion) []string {
	out := []string{}
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestGroupVersions(t *testing.T) {
	g := GroupVersions(versionFixture(), VersionFilter{})
	assert.Equal(t, []string{"1"}, versionIDs(g.ActiveEvolveum))
	assert.Equal(t, []string{"2"}, versionIDs(g.ActiveCommunity))
	assert.Equal(t, []string{"3"}, versionIDs(g.OtherEvolveum))
	assert.Equal(t, []string{"4"}, versionIDs(g.OtherCommunity))
	assert.Equal(t, 2, g.OtherCount())
}

func TestGroupVersions_Filters(t *testing.T) {
	g := GroupVersions(versionFixture(), VersionFilter{MidpointVersions: []string{"4.9"}})
	assert.Equal(t, []string{"1"}, versionIDs(g.ActiveEvolveum))
	assert.Empty(t, g.ActiveCommunity)
	assert.Empty(t, g.OtherEvolveum, "versions without a midPoint version are filtered out")
	assert.Equal(t, []string{"4"}, versionIDs(g.OtherCommunity))

	g = GroupVersions(versionFixture(), VersionFilter{Capabilities: []string{"READ", "DELETE"}})
	assert.Equal(t, []string{"2"}, versionIDs(g.ActiveCommunity))
	assert.Zero(t, len(g.ActiveEvolveum)+g.OtherCount())
}

func TestDetailMidpointVersions(t *testing.T) {
	d := &models.ApplicationDetail{ImplementationVersions: versionFixture()}
	assert.Equal(t, []string{"4.8", "4.9"}, DetailMidpointVersions(d))
}

func TestVisibleTagsAndCapabilities(t *testing.T) {
	assert.Equal(t, []string{"ldap"}, VisibleTags([]string{"AI generated", "ldap", "ai_generated"}))
	assert.Equal(t, []string{"CREATE"}, VisibleCapabilities([]string{"Installed", "CREATE"}))
}
