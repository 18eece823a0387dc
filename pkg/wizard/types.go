// Package wizard implements the connector upload flow: choosing a
// connector type, picking or defining the target application, filling the
// application and implementation forms, and submitting the publish payload.
package wizard

import (
	"fmt"
	"strings"
)

// ConnectorType selects how the connector is hosted
type ConnectorType string

const (
	ConnectorEvolveumHosted ConnectorType = "evolveum-hosted"
	ConnectorOwnRepo        ConnectorType = "own-repo"
	ConnectorJavaBased      ConnectorType = "java-based"
)

// ConnectorTypes lists every connector type in menu order
var ConnectorTypes = []ConnectorType{ConnectorEvolveumHosted, ConnectorOwnRepo, ConnectorJavaBased}

// ParseConnectorType parses a connector type name
func ParseConnectorType(s string) (ConnectorType, error) {
	for _, ct := range ConnectorTypes {
		if strings.EqualFold(s, string(ct)) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown connector type %q", s)
}

// Mode tells what the implementation form does
type Mode string

const (
	// ModeNewVersion attaches a version to an existing implementation
	ModeNewVersion Mode = "new-version"
	// ModeNewImplementation defines a new implementation
	ModeNewImplementation Mode = "new-implementation"
	// ModeEditVersion edits the version being attached
	ModeEditVersion Mode = "edit-version"
)

// Modes lists every implementation mode
var Modes = []Mode{ModeNewVersion, ModeNewImplementation, ModeEditVersion}

// ParseMode parses an implementation mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown implementation mode %q", s)
}

// Step is a wizard step
type Step int

const (
	StepSelectConnectorType Step = iota
	StepSelectApplication
	StepDetailForm
	StepImplementationForm
	StepSubmit
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepSelectConnectorType:
		return "select-connector-type"
	case StepSelectApplication:
		return "select-application"
	case StepDetailForm:
		return "detail-form"
	case StepImplementationForm:
		return "implementation-form"
	case StepSubmit:
		return "submit"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// DeploymentType is where the target application runs
type DeploymentType string

const (
	DeploymentOnPremise  DeploymentType = "on-premise"
	DeploymentCloudBased DeploymentType = "cloud-based"
	DeploymentBoth       DeploymentType = "both"
)

// ParseDeploymentType parses a deployment type name
func ParseDeploymentType(s string) (DeploymentType, error) {
	for _, d := range []DeploymentType{DeploymentOnPremise, DeploymentCloudBased, DeploymentBoth} {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown deployment type %q", s)
}

// License options accepted by the backend
var LicenseOptions = []string{"MIT", "APACHE_2", "BSD", "EUPL"}

// Build framework options accepted by the backend
var BuildFrameworkOptions = []string{"MAVEN", "GRADLE"}

// normalizeEnum upper-cases an enum value and maps blanks to nil
func normalizeEnum(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
	return &s
}

// optional maps blank strings to nil
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
