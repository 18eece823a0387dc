// Package testutil provides shared test fixtures for connhub packages.
package testutil

import (
	"github.com/google/uuid"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// NewApplication returns an active Application with a random ID, suitable
// for test fixtures. Override fields with options.
func NewApplication(name string, opts ...func(*models.Application)) models.Application {
	a := models.Application{
		ID:             uuid.New().String(),
		DisplayName:    name,
		Description:    name + " connector",
		LifecycleState: models.LifecycleActive,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// WithID sets the application ID.
func WithID(id string) func(*models.Application) {
	return func(a *models.Application) { a.ID = id }
}

// WithDescription sets the description.
func WithDescription(d string) func(*models.Application) {
	return func(a *models.Application) { a.Description = d }
}

// WithState sets the lifecycle state.
func WithState(s models.LifecycleState) func(*models.Application) {
	return func(a *models.Application) { a.LifecycleState = s }
}

// WithRisk sets the risk level.
func WithRisk(r string) func(*models.Application) {
	return func(a *models.Application) { a.RiskLevel = r }
}

// WithCategory appends a CATEGORY tag to the categories.
func WithCategory(name, displayName string) func(*models.Application) {
	return func(a *models.Application) {
		a.Categories = append(a.Categories, models.Tag{
			Name: name, DisplayName: displayName, TagType: models.TagTypeCategory,
		})
	}
}

// WithTag appends a tag of the given type to the tags.
func WithTag(name string, tagType models.TagType) func(*models.Application) {
	return func(a *models.Application) {
		a.Tags = append(a.Tags, models.Tag{Name: name, DisplayName: name, TagType: tagType})
	}
}

// WithCapabilities sets the capabilities.
func WithCapabilities(caps ...string) func(*models.Application) {
	return func(a *models.Application) { a.Capabilities = caps }
}

// WithMidpointVersions sets the supported midPoint versions.
func WithMidpointVersions(versions ...string) func(*models.Application) {
	return func(a *models.Application) { a.MidpointVersions = versions }
}

// WithOrigins sets the countries of origin.
func WithOrigins(names ...string) func(*models.Application) {
	return func(a *models.Application) {
		a.Origins = nil
		for _, n := range names {
			a.Origins = append(a.Origins, models.CountryOfOrigin{Name: n, DisplayName: n})
		}
	}
}

// Popular marks the application as trending.
func Popular() func(*models.Application) {
	return WithTag(models.TagPopular, models.TagTypeCommon)
}
