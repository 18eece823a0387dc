package wizard

import (
	"strings"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// categoryTag builds the CATEGORY tag for the chosen category name, using
// the display name known from the catalog when there is one.
func (w *Wizard) categoryTag() models.Tag {
	name := w.Detail.Category
	tag := models.Tag{Name: name, DisplayName: name, TagType: models.TagTypeCategory}
	for _, app := range w.applications {
		for _, c := range app.Categories {
			if c.Name == name && c.DisplayName != "" {
				tag.DisplayName = c.DisplayName
				tag.ID = c.ID
				return tag
			}
		}
	}
	return tag
}

// Version returns the connector version to publish: the bundle version
// when the upload carries one, else the version in the browse link.
func (w *Wizard) Version() string {
	if w.File != nil && w.File.Bundle != nil {
		return w.File.Bundle.Version
	}
	if v, ok := VersionFromBrowseLink(w.Impl.BrowseLink); ok {
		return v
	}
	if impl := w.Implementation(); impl != nil {
		if v, ok := VersionFromBrowseLink(impl.BrowseLink); ok {
			return v
		}
	}
	return ""
}

// BuildPayload assembles the publish payload from the wizard state
func (w *Wizard) BuildPayload() (*models.PublishPayload, error) {
	if err := w.Detail.Validate(); err != nil {
		return nil, err
	}
	if err := w.Impl.Validate(w.connectorType); err != nil {
		return nil, err
	}

	app := models.PublishApplication{
		DisplayName: strings.TrimSpace(w.Detail.DisplayName),
		Description: strings.TrimSpace(w.Detail.Description()),
		Origins:     make([]models.Country, 0, w.Detail.Origins.Len()),
		Tags:        append([]models.Tag{w.categoryTag()}, w.Detail.DeploymentTags()...),
	}
	if w.selected != nil {
		app.ID = w.selected.ID
	}
	if w.Detail.Logo != nil {
		app.Logo = w.Detail.Logo.Content
	}
	for _, o := range w.Detail.Origins.Entries() {
		app.Origins = append(app.Origins, MatchCountry(o, "", w.countries))
	}

	f := w.Impl
	impl := models.PublishImplementation{
		ConnectorType:  strings.ToUpper(strings.ReplaceAll(string(w.connectorType), "-", "_")),
		Mode:           strings.ToUpper(strings.ReplaceAll(string(f.EffectiveMode()), "-", "_")),
		DisplayName:    strings.TrimSpace(f.DisplayName),
		Description:    strings.TrimSpace(f.Description),
		Maintainer:     optional(f.Maintainer),
		License:        normalizeEnum(f.License),
		BuildFramework: normalizeEnum(f.BuildFramework),
		BrowseLink:     optional(f.BrowseLink),
		TicketingLink:  optional(f.TicketingLink),
		CheckoutLink:   optional(f.CheckoutLink),
		PathToProject:  optional(f.PathToProject),
		Version:        w.Version(),
	}
	if f.Mode != ModeNewImplementation {
		impl.ImplementationID = f.SelectedImplementation
	}

	payload := &models.PublishPayload{Application: app, Implementation: impl}
	if w.File != nil {
		payload.Files = []models.ItemFile{{Path: w.File.Name, Content: w.File.Content}}
		payload.Bundle = w.File.Bundle
	}
	return payload, nil
}
