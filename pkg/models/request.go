package models

// IntegrationRequest asks for a new connector integration
type IntegrationRequest struct {
	IntegrationApplicationName string   `json:"integrationApplicationName"`
	BaseURL                    string   `json:"baseUrl"`
	Capabilities               []string `json:"capabilities"`
	Description                string   `json:"description"`
	SystemVersion              string   `json:"systemVersion"`
	Email                      string   `json:"email"`
	Collab                     bool     `json:"collab"`
	Requester                  string   `json:"requester"`
}

// PublishPayload is the upload body sent when publishing a connector
type PublishPayload struct {
	Application    PublishApplication    `json:"application"`
	Implementation PublishImplementation `json:"implementation"`
	Files          []ItemFile            `json:"files,omitempty"`
	Bundle         *BundleInfo           `json:"bundle,omitempty"`
}

// PublishApplication carries the application part of an upload
type PublishApplication struct {
	ID          string    `json:"id,omitempty"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description"`
	Logo        []byte    `json:"logo,omitempty"`
	Origins     []Country `json:"origins"`
	Tags        []Tag     `json:"tags"`
}

// PublishImplementation carries the implementation part of an upload.
// Optional enum-like fields are nil when unset.
type PublishImplementation struct {
	ImplementationID string  `json:"implementationId,omitempty"`
	ConnectorType    string  `json:"connectorType"`
	Mode             string  `json:"mode"`
	DisplayName      string  `json:"displayName,omitempty"`
	Description      string  `json:"description"`
	Maintainer       *string `json:"maintainer"`
	License          *string `json:"licenseType"`
	BuildFramework   *string `json:"buildFramework"`
	BrowseLink       *string `json:"browseLink"`
	TicketingLink    *string `json:"ticketingLink"`
	CheckoutLink     *string `json:"checkoutLink"`
	PathToProject    *string `json:"pathToProject"`
	Version          string  `json:"version,omitempty"`
}

// ItemFile is an opaque file attached to an upload
type ItemFile struct {
	Path    string `json:"path"`
	Content []byte `json:"content"`
}

// BundleInfo is metadata extracted from a connector bundle manifest
type BundleInfo struct {
	BundleName string `json:"bundleName"`
	Version    string `json:"version"`
	ClassName  string `json:"className,omitempty"`
}
