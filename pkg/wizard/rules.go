package wizard

import (
	"strings"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
)

// Field names an implementation form field
type Field string

const (
	FieldDisplayName    Field = "displayName"
	FieldLicense        Field = "license"
	FieldDescription    Field = "description"
	FieldBuildFramework Field = "buildFramework"
	FieldBrowseLink     Field = "browseLink"
	FieldCheckoutLink   Field = "checkoutLink"
	FieldFile           Field = "file"
	FieldImplementation Field = "implementation"
	FieldCategory       Field = "category"
	FieldDeploymentType Field = "deploymentType"
)

type ruleKey struct {
	connector ConnectorType
	mode      Mode
}

var requiredFields = map[ruleKey][]Field{
	{ConnectorEvolveumHosted, ModeNewImplementation}: {FieldDisplayName, FieldDescription, FieldFile},
	{ConnectorEvolveumHosted, ModeEditVersion}:       {FieldDescription, FieldFile},
	{ConnectorJavaBased, ModeNewImplementation}: {
		FieldDisplayName, FieldLicense, FieldDescription, FieldBuildFramework, FieldBrowseLink, FieldCheckoutLink,
	},
	{ConnectorJavaBased, ModeEditVersion}:     {FieldDescription, FieldBuildFramework, FieldBrowseLink, FieldCheckoutLink},
	{ConnectorOwnRepo, ModeNewImplementation}: {FieldDisplayName, FieldLicense, FieldDescription},
	{ConnectorOwnRepo, ModeEditVersion}:       {FieldDescription},
}

// RequiredFields returns the fields that must be filled for a connector
// type and mode. Attaching a version that is not yet confirmed only needs
// a selected implementation.
func RequiredFields(ct ConnectorType, mode Mode) []Field {
	if mode == ModeNewVersion {
		return []Field{FieldImplementation}
	}
	return requiredFields[ruleKey{ct, mode}]
}

// ImplementationForm holds the implementation step input
type ImplementationForm struct {
	Mode Mode

	// SelectedImplementation is the implementation a new version attaches to
	SelectedImplementation string
	// Confirmed moves a new version on to editing its details
	Confirmed bool

	DisplayName    string
	Maintainer     string
	License        string
	Description    string
	BrowseLink     string
	TicketingLink  string
	BuildFramework string
	CheckoutLink   string
	PathToProject  string

	// HasFile reports an uploaded connector file
	HasFile bool
}

// EffectiveMode is the mode whose rules apply. A confirmed new version is
// validated like an edited version.
func (f *ImplementationForm) EffectiveMode() Mode {
	if f.Mode == ModeNewVersion && f.Confirmed && f.SelectedImplementation != "" {
		return ModeEditVersion
	}
	return f.Mode
}

// SelectImplementation chooses an existing implementation to attach to
func (f *ImplementationForm) SelectImplementation(id string) {
	f.Mode = ModeNewVersion
	f.SelectedImplementation = id
	f.Confirmed = false
}

// value returns the current value of a field
func (f *ImplementationForm) value(field Field) string {
	switch field {
	case FieldDisplayName:
		return f.DisplayName
	case FieldLicense:
		return f.License
	case FieldDescription:
		return f.Description
	case FieldBuildFramework:
		return f.BuildFramework
	case FieldBrowseLink:
		return f.BrowseLink
	case FieldCheckoutLink:
		return f.CheckoutLink
	case FieldImplementation:
		return f.SelectedImplementation
	case FieldFile:
		if f.HasFile {
			return "file"
		}
	}
	return ""
}

// Missing returns the required fields left blank
func (f *ImplementationForm) Missing(ct ConnectorType) []Field {
	var missing []Field
	for _, field := range RequiredFields(ct, f.EffectiveMode()) {
		if strings.TrimSpace(f.value(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Valid reports whether every required field is filled
func (f *ImplementationForm) Valid(ct ConnectorType) bool {
	if f.Mode == "" {
		return false
	}
	return len(f.Missing(ct)) == 0
}

// Validate returns a validation error listing the missing fields
func (f *ImplementationForm) Validate(ct ConnectorType) error {
	if f.Mode == "" {
		return apperrors.NewValidationError(apperrors.CodeValidationFailed, "choose whether to add a version or a new implementation")
	}
	missing := f.Missing(ct)
	if len(missing) == 0 {
		return nil
	}
	return fieldErrors("implementation form is incomplete", missing)
}

func fieldErrors(msg string, missing []Field) error {
	fields := make([]apperrors.FieldError, 0, len(missing))
	for _, m := range missing {
		fields = append(fields, apperrors.FieldError{Field: string(m), Code: "required", Message: string(m) + " is required"})
	}
	return apperrors.NewValidationError(apperrors.CodeValidationFailed, msg).WithFields(fields)
}
