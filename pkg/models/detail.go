package models

import "time"

// ApplicationDetail is the full application returned by the detail endpoint
type ApplicationDetail struct {
	ID                     string                  `json:"id"`
	DisplayName            string                  `json:"displayName"`
	Description            string                  `json:"description"`
	Logo                   string                  `json:"logo,omitempty"`
	RiskLevel              string                  `json:"riskLevel,omitempty"`
	LifecycleState         LifecycleState          `json:"lifecycleState,omitempty"`
	LastModified           *time.Time              `json:"lastModified,omitempty"`
	CreatedAt              *time.Time              `json:"createdAt,omitempty"`
	Requester              string                  `json:"requester,omitempty"`
	Capabilities           []string                `json:"capabilities"`
	Categories             []Tag                   `json:"categories"`
	Tags                   []Tag                   `json:"tags"`
	Origins                []CountryOfOrigin       `json:"origins"`
	ImplementationVersions []ImplementationVersion `json:"implementationVersions"`
	RequestID              *int64                  `json:"requestId,omitempty"`
}

// ImplementationVersion is one published version of a connector implementation
type ImplementationVersion struct {
	ID                 string         `json:"id,omitempty"`
	Description        string         `json:"description"`
	ImplementationTags []string       `json:"implementationTags"`
	Capabilities       []string       `json:"capabilities"`
	ConnectorVersion   string         `json:"connectorVersion"`
	SystemVersion      string         `json:"systemVersion,omitempty"`
	MidpointVersion    string         `json:"midpointVersion,omitempty"`
	ReleasedDate       *time.Time     `json:"releasedDate,omitempty"`
	Author             string         `json:"author"`
	LifecycleState     LifecycleState `json:"lifecycleState"`
	DownloadLink       string         `json:"downloadLink,omitempty"`
	Framework          string         `json:"framework,omitempty"`
}

// Implementation is an existing connector implementation that a new
// version can be attached to
type Implementation struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	Maintainer     string `json:"maintainer,omitempty"`
	License        string `json:"licenseType,omitempty"`
	BrowseLink     string `json:"browseLink,omitempty"`
	CheckoutLink   string `json:"checkoutLink,omitempty"`
	BuildFramework string `json:"buildFramework,omitempty"`
	Version        string `json:"version,omitempty"`
}
