package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// MaxDescriptionLength is the longest accepted application description
const MaxDescriptionLength = 350

// DeploymentOption is one choice offered for the deployment type
type DeploymentOption struct {
	Value DeploymentType
	Label string
}

var allDeploymentOptions = []DeploymentOption{
	{Value: DeploymentOnPremise, Label: "On-premise"},
	{Value: DeploymentCloudBased, Label: "Cloud-based"},
	{Value: DeploymentBoth, Label: "Both"},
}

var bothDeploymentOption = DeploymentOption{Value: DeploymentBoth, Label: "Both (On-premise and Cloud-based)"}

// deploymentTags returns the DEPLOYMENT tags of app
func deploymentTags(app *models.Application) []models.Tag {
	if app == nil {
		return nil
	}
	var tags []models.Tag
	for _, t := range app.AllTags() {
		if t.TagType == models.TagTypeDeployment {
			tags = append(tags, t)
		}
	}
	return tags
}

// deploymentFromTag maps ON_PREMISE to on-premise and so on
func deploymentFromTag(t models.Tag) DeploymentType {
	return DeploymentType(strings.ReplaceAll(strings.ToLower(t.Name), "_", "-"))
}

// DeploymentOptions returns the deployment choices for app. No app or no
// DEPLOYMENT tag offers all three, one tag offers it plus both, and two
// tags offer only both.
func DeploymentOptions(app *models.Application) []DeploymentOption {
	tags := deploymentTags(app)
	switch {
	case len(tags) == 0:
		return append([]DeploymentOption(nil), allDeploymentOptions...)
	case len(tags) == 1:
		label := tags[0].DisplayName
		if label == "" {
			label = tags[0].Name
		}
		return []DeploymentOption{{Value: deploymentFromTag(tags[0]), Label: label}, bothDeploymentOption}
	default:
		return []DeploymentOption{bothDeploymentOption}
	}
}

// DefaultDeployment returns the preselected deployment type for app
func DefaultDeployment(app *models.Application) DeploymentType {
	tags := deploymentTags(app)
	switch len(tags) {
	case 0:
		return DeploymentOnPremise
	case 1:
		return deploymentFromTag(tags[0])
	default:
		return DeploymentBoth
	}
}

// DetailForm holds the target application step input
type DetailForm struct {
	DisplayName    string
	description    string
	Category       string
	DeploymentType DeploymentType
	Origins        *OriginList
	Logo           *Logo
}

// NewDetailForm returns an empty form
func NewDetailForm() *DetailForm {
	return &DetailForm{
		DeploymentType: DeploymentOnPremise,
		Origins:        NewOriginList(),
	}
}

// Description returns the description
func (f *DetailForm) Description() string { return f.description }

// SetDescription sets the description. Text longer than
// MaxDescriptionLength characters is rejected and the old value kept.
func (f *DetailForm) SetDescription(s string) bool {
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return false
	}
	f.description = s
	return true
}

// PopulateFrom fills the form from an existing application. Origins are
// matched against countries and locked.
func (f *DetailForm) PopulateFrom(app *models.Application, countries []models.Country) {
	f.DisplayName = app.DisplayName
	desc := app.Description
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		desc = string([]rune(desc)[:MaxDescriptionLength])
	}
	f.description = desc
	f.Category = ""
	if len(app.Categories) > 0 {
		f.Category = app.Categories[0].Name
	}
	f.DeploymentType = DefaultDeployment(app)
	f.Origins = NewOriginList(CountryNames(MatchOrigins(app.Origins, countries))...)
	f.Logo = nil
}

// Missing returns the required fields left blank
func (f *DetailForm) Missing() []Field {
	var missing []Field
	if strings.TrimSpace(f.DisplayName) == "" {
		missing = append(missing, FieldDisplayName)
	}
	if strings.TrimSpace(f.description) == "" {
		missing = append(missing, FieldDescription)
	}
	if strings.TrimSpace(f.Category) == "" {
		missing = append(missing, FieldCategory)
	}
	if f.DeploymentType == "" {
		missing = append(missing, FieldDeploymentType)
	}
	return missing
}

// Validate returns a validation error listing the missing fields
func (f *DetailForm) Validate() error {
	if missing := f.Missing(); len(missing) > 0 {
		return fieldErrors("application details are incomplete", missing)
	}
	return nil
}

// DeploymentTags returns the DEPLOYMENT tags matching the deployment type
func (f *DetailForm) DeploymentTags() []models.Tag {
	onPrem := models.Tag{Name: models.TagOnPremise, DisplayName: "On-premise", TagType: models.TagTypeDeployment}
	cloud := models.Tag{Name: models.TagCloudBased, DisplayName: "Cloud-based", TagType: models.TagTypeDeployment}
	switch f.DeploymentType {
	case DeploymentOnPremise:
		return []models.Tag{onPrem}
	case DeploymentCloudBased:
		return []models.Tag{cloud}
	case DeploymentBoth:
		return []models.Tag{onPrem, cloud}
	}
	return nil
}
