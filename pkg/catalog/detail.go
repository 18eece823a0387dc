package catalog

import (
	"slices"
	"strings"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// VersionFilter narrows the implementation versions of a detail view
type VersionFilter struct {
	Capabilities     []string `json:"capabilities"`
	MidpointVersions []string `json:"midpointVersions"`
}

// IsEmpty reports whether no version filter is set
func (f VersionFilter) IsEmpty() bool {
	return len(f.Capabilities) == 0 && len(f.MidpointVersions) == 0
}

// VersionGroups splits versions by lifecycle and authorship
type VersionGroups struct {
	ActiveEvolveum  []models.ImplementationVersion `json:"activeEvolveum"`
	ActiveCommunity []models.ImplementationVersion `json:"activeCommunity"`
	OtherEvolveum   []models.ImplementationVersion `json:"otherEvolveum"`
	OtherCommunity  []models.ImplementationVersion `json:"otherCommunity"`
}

// OtherCount is the number of versions that are not active
func (g VersionGroups) OtherCount() int {
	return len(g.OtherEvolveum) + len(g.OtherCommunity)
}

// GroupVersions filters versions and groups them. A version passes the
// capability filter when it has any selected capability, and the version
// filter when its midPoint version is selected.
func GroupVersions(versions []models.ImplementationVersion, filter VersionFilter) VersionGroups {
	var g VersionGroups
	for _, v := range versions {
		if len(filter.Capabilities) > 0 && !containsAny(v.Capabilities, filter.Capabilities) {
			continue
		}
		if len(filter.MidpointVersions) > 0 &&
			(v.MidpointVersion == "" || !slices.Contains(filter.MidpointVersions, v.MidpointVersion)) {
			continue
		}

		evolveum := IsEvolveumAuthored(v)
		active := v.LifecycleState == models.LifecycleActive
		switch {
		case active && evolveum:
			g.ActiveEvolveum = append(g.ActiveEvolveum, v)
		case active:
			g.ActiveCommunity = append(g.ActiveCommunity, v)
		case evolveum:
			g.OtherEvolveum = append(g.OtherEvolveum, v)
		default:
			g.OtherCommunity = append(g.OtherCommunity, v)
		}
	}
	return g
}

// IsEvolveumAuthored reports whether the version author names Evolveum
func IsEvolveumAuthored(v models.ImplementationVersion) bool {
	return strings.Contains(strings.ToLower(v.Author), models.EvolveumAuthor)
}

// DetailMidpointVersions returns the distinct midPoint versions of a detail
func DetailMidpointVersions(d *models.ApplicationDetail) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range d.ImplementationVersions {
		if v.MidpointVersion != "" && !seen[v.MidpointVersion] {
			seen[v.MidpointVersion] = true
			out = append(out, v.MidpointVersion)
		}
	}
	SortVersions(out)
	return out
}

// VisibleTags drops the generated-content marker from implementation tags
func VisibleTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		normalized := strings.Join(strings.Fields(strings.ToLower(t)), "_")
		if normalized == "ai_generated" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// VisibleCapabilities drops the Installed pseudo capability
func VisibleCapabilities(capabilities []string) []string {
	out := make([]string, 0, len(capabilities))
	for _, c := range capabilities {
		if c != "Installed" {
			out = append(out, c)
		}
	}
	return out
}
