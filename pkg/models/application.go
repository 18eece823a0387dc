package models

import "time"

// LifecycleState is the publication state of an application or version
type LifecycleState string

const (
	LifecycleRequested        LifecycleState = "REQUESTED"
	LifecycleInPublishProcess LifecycleState = "IN_PUBLISH_PROCESS"
	LifecycleActive           LifecycleState = "ACTIVE"
	LifecycleWithError        LifecycleState = "WITH_ERROR"
)

// LifecycleStates lists every state in display order.
var LifecycleStates = []LifecycleState{
	LifecycleActive,
	LifecycleRequested,
	LifecycleInPublishProcess,
	LifecycleWithError,
}

// TagType classifies a tag
type TagType string

const (
	TagTypeCategory   TagType = "CATEGORY"
	TagTypeDeployment TagType = "DEPLOYMENT"
	TagTypeLocality   TagType = "LOCALITY"
	TagTypeCommon     TagType = "COMMON"
)

// Well-known tag names
const (
	TagPopular     = "popular"
	TagOnPremise   = "ON_PREMISE"
	TagCloudBased  = "CLOUD_BASED"
	EvolveumAuthor = "evolveum"
)

// Capability values understood by the catalog
const (
	CapabilityCreate                = "CREATE"
	CapabilityGet                   = "GET"
	CapabilityUpdate                = "UPDATE"
	CapabilityDelete                = "DELETE"
	CapabilityTest                  = "TEST"
	CapabilityScriptOnConnector     = "SCRIPT_ON_CONNECTOR"
	CapabilityScriptOnResource      = "SCRIPT_ON_RESOURCE"
	CapabilityAuthentication        = "AUTHENTICATION"
	CapabilitySearch                = "SEARCH"
	CapabilityValidate              = "VALIDATE"
	CapabilitySync                  = "SYNC"
	CapabilityLiveSync              = "LIVE_SYNC"
	CapabilitySchema                = "SCHEMA"
	CapabilityDiscoverConfiguration = "DISCOVER_CONFIGURATION"
	CapabilityResolveUsername       = "RESOLVE_USERNAME"
	CapabilityPartialSchema         = "PARTIAL_SCHEMA"
	CapabilityComplexUpdateDelta    = "COMPLEX_UPDATE_DELTA"
	CapabilityUpdateDelta           = "UPDATE_DELTA"
)

// Capabilities lists every known capability in filter order.
var Capabilities = []string{
	CapabilityCreate,
	CapabilityGet,
	CapabilityUpdate,
	CapabilityDelete,
	CapabilityTest,
	CapabilityScriptOnConnector,
	CapabilityScriptOnResource,
	CapabilityAuthentication,
	CapabilitySearch,
	CapabilityValidate,
	CapabilitySync,
	CapabilityLiveSync,
	CapabilitySchema,
	CapabilityDiscoverConfiguration,
	CapabilityResolveUsername,
	CapabilityPartialSchema,
	CapabilityComplexUpdateDelta,
	CapabilityUpdateDelta,
}

// Tag is a named label attached to an application
type Tag struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	TagType     TagType `json:"tagType,omitempty"`
}

// CountryOfOrigin is an origin attached to an application
type CountryOfOrigin struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Application is one catalog entry as returned by the list endpoint
type Application struct {
	ID               string            `json:"id"`
	DisplayName      string            `json:"displayName"`
	Description      string            `json:"description"`
	Logo             string            `json:"logo,omitempty"`
	RiskLevel        string            `json:"riskLevel,omitempty"`
	LifecycleState   LifecycleState    `json:"lifecycleState,omitempty"`
	LastModified     *time.Time        `json:"lastModified,omitempty"`
	Categories       []Tag             `json:"categories"`
	Tags             []Tag             `json:"tags"`
	Capabilities     []string          `json:"capabilities"`
	MidpointVersions []string          `json:"midpointVersions"`
	Origins          []CountryOfOrigin `json:"origins,omitempty"`
	RequestID        *int64            `json:"requestId,omitempty"`
	VoteCount        int64             `json:"voteCount,omitempty"`
}

// AllTags returns categories followed by tags.
func (a *Application) AllTags() []Tag {
	out := make([]Tag, 0, len(a.Categories)+len(a.Tags))
	out = append(out, a.Categories...)
	return append(out, a.Tags...)
}

// CategoryCount is one row of the category counts endpoint
type CategoryCount struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Count       int64  `json:"count"`
}

// Country is an entry of the reference country list
type Country struct {
	Name     string `json:"name"`
	Official string `json:"official,omitempty"`
	Code     string `json:"code"`
}
