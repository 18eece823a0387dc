package wizard

import (
	"net/mail"
	"strings"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

// AnonymousRequester is the requester of a request filed without an email
const AnonymousRequester = "anonymous"

// RequestForm is the integration request input
type RequestForm struct {
	ApplicationName string
	BaseURL         string
	Capabilities    []string
	Description     string
	SystemVersion   string
	Email           string
	Collab          bool
}

// ToggleCapability adds or removes a capability
func (f *RequestForm) ToggleCapability(capability string) {
	for i, c := range f.Capabilities {
		if c == capability {
			f.Capabilities = append(f.Capabilities[:i], f.Capabilities[i+1:]...)
			return
		}
	}
	f.Capabilities = append(f.Capabilities, capability)
}

// Validate checks the application name and the email, when given
func (f *RequestForm) Validate() error {
	var fields []apperrors.FieldError
	if strings.TrimSpace(f.ApplicationName) == "" {
		fields = append(fields, apperrors.FieldError{Field: "integrationApplicationName", Code: "required", Message: "application name is required"})
	}
	if email := strings.TrimSpace(f.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			fields = append(fields, apperrors.FieldError{Field: "email", Code: "invalid", Message: "email address is invalid"})
		}
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(apperrors.CodeValidationFailed, "integration request is incomplete").WithFields(fields)
	}
	return nil
}

// Build returns the request body. The requester is the email, or
// AnonymousRequester when none was given.
func (f *RequestForm) Build() *models.IntegrationRequest {
	requester := strings.TrimSpace(f.Email)
	if requester == "" {
		requester = AnonymousRequester
	}
	caps := f.Capabilities
	if caps == nil {
		caps = []string{}
	}
	return &models.IntegrationRequest{
		IntegrationApplicationName: strings.TrimSpace(f.ApplicationName),
		BaseURL:                    strings.TrimSpace(f.BaseURL),
		Capabilities:               caps,
		Description:                strings.TrimSpace(f.Description),
		SystemVersion:              strings.TrimSpace(f.SystemVersion),
		Email:                      strings.TrimSpace(f.Email),
		Collab:                     f.Collab,
		Requester:                  requester,
	}
}
