package wizard

import (
	"fmt"
	"strings"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

// Wizard drives the upload flow. It is not safe for concurrent use.
type Wizard struct {
	step          Step
	connectorType ConnectorType

	applications    []models.Application
	countries       []models.Country
	implementations []models.Implementation

	selected  *models.Application
	defineNew bool
	// populatedFrom is the application the detail form was filled from
	populatedFrom string

	Detail *DetailForm
	Impl   *ImplementationForm
	File   *UploadFile

	logger utils.Logger
}

// Option configures a Wizard
type Option func(*Wizard)

// WithCountries sets the reference country list used to match origins
func WithCountries(countries []models.Country) Option {
	return func(w *Wizard) { w.countries = countries }
}

// WithLogger sets the logger
func WithLogger(l utils.Logger) Option {
	return func(w *Wizard) { w.logger = l }
}

// New starts a wizard over the catalog applications
func New(applications []models.Application, opts ...Option) *Wizard {
	w := &Wizard{applications: applications, logger: utils.NopLogger()}
	for _, opt := range opts {
		opt(w)
	}
	w.Reset()
	return w
}

// Reset returns to the first step and clears all input
func (w *Wizard) Reset() {
	w.step = StepSelectConnectorType
	w.connectorType = ConnectorEvolveumHosted
	w.selected = nil
	w.defineNew = false
	w.implementations = nil
	w.Detail = NewDetailForm()
	w.populatedFrom = ""
	w.Impl = &ImplementationForm{}
	w.File = nil
}

// Step returns the current step
func (w *Wizard) Step() Step { return w.step }

// ConnectorType returns the chosen connector type
func (w *Wizard) ConnectorType() ConnectorType { return w.connectorType }

// Countries returns the reference country list
func (w *Wizard) Countries() []models.Country { return w.countries }

// SelectConnectorType chooses the connector type
func (w *Wizard) SelectConnectorType(ct ConnectorType) error {
	if _, err := ParseConnectorType(string(ct)); err != nil {
		return apperrors.NewValidationError(apperrors.CodeValidationFailed, err.Error())
	}
	if w.step != StepSelectConnectorType {
		return w.stepError(StepSelectConnectorType)
	}
	w.connectorType = ct
	return nil
}

// Search returns ACTIVE applications whose name or description contains
// query. An empty query returns nothing.
func (w *Wizard) Search(query string) []models.Application {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.Application
	for _, app := range w.applications {
		if app.LifecycleState != models.LifecycleActive {
			continue
		}
		if strings.Contains(strings.ToLower(app.DisplayName), q) ||
			strings.Contains(strings.ToLower(app.Description), q) {
			out = append(out, app)
		}
	}
	return out
}

// SelectApplication targets an existing ACTIVE application
func (w *Wizard) SelectApplication(id string) error {
	if w.step != StepSelectApplication {
		return w.stepError(StepSelectApplication)
	}
	for i := range w.applications {
		app := &w.applications[i]
		if app.ID != id {
			continue
		}
		if app.LifecycleState != models.LifecycleActive {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed,
				fmt.Sprintf("application %s is not active", app.DisplayName))
		}
		w.selected = app
		w.defineNew = false
		w.implementations = nil
		return nil
	}
	return apperrors.NewNotFoundError(apperrors.CodeNotFound, fmt.Sprintf("application %s not found", id))
}

// DefineNew targets a new application
func (w *Wizard) DefineNew() error {
	if w.step != StepSelectApplication {
		return w.stepError(StepSelectApplication)
	}
	w.selected = nil
	w.defineNew = true
	w.implementations = nil
	w.Detail = NewDetailForm()
	w.populatedFrom = ""
	return nil
}

// ClearSelection drops the target application and its details
func (w *Wizard) ClearSelection() {
	w.selected = nil
	w.defineNew = false
	w.implementations = nil
	w.Detail = NewDetailForm()
	w.populatedFrom = ""
}

// Selected returns the targeted existing application, if any
func (w *Wizard) Selected() *models.Application { return w.selected }

// IsNewApplication reports whether a new application is being defined
func (w *Wizard) IsNewApplication() bool { return w.defineNew }

// SetImplementations sets the implementations a new version can attach to
func (w *Wizard) SetImplementations(impls []models.Implementation) {
	w.implementations = impls
}

// Implementations returns the implementations of the selected application
func (w *Wizard) Implementations() []models.Implementation { return w.implementations }

// Implementation returns the selected existing implementation
func (w *Wizard) Implementation() *models.Implementation {
	for i := range w.implementations {
		if w.implementations[i].ID == w.Impl.SelectedImplementation {
			return &w.implementations[i]
		}
	}
	return nil
}

// AttachFile sets the uploaded connector file
func (w *Wizard) AttachFile(name string, content []byte) *UploadFile {
	w.File = NewUploadFile(name, content)
	w.Impl.HasFile = true
	if w.File.Opaque() {
		w.logger.Debug("treating %s as an opaque attachment: %v", name, w.File.ParseError)
	}
	return w.File
}

// CanAdvance reports whether Next would succeed
func (w *Wizard) CanAdvance() bool {
	return w.validateStep() == nil && w.step < StepSubmit
}

// Next validates the current step and moves to the following one
func (w *Wizard) Next() error {
	if w.step >= StepSubmit {
		return apperrors.NewValidationError(apperrors.CodeValidationFailed, "nothing left to fill, submit the upload")
	}
	if err := w.validateStep(); err != nil {
		return err
	}

	switch w.step {
	case StepSelectApplication:
		if w.selected != nil && w.selected.ID != w.populatedFrom {
			w.Detail.PopulateFrom(w.selected, w.countries)
			w.populatedFrom = w.selected.ID
		}
	case StepDetailForm:
		if w.Impl.Mode == "" {
			if w.selected != nil {
				w.Impl.Mode = ModeNewVersion
			} else {
				w.Impl.Mode = ModeNewImplementation
			}
		}
	}
	w.step++
	return nil
}

// Back returns to the previous step. Entered data is kept.
func (w *Wizard) Back() {
	if w.step > StepSelectConnectorType && w.step < StepDone {
		w.step--
	}
}

func (w *Wizard) validateStep() error {
	switch w.step {
	case StepSelectConnectorType:
		if w.connectorType == "" {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed, "choose a connector type")
		}
	case StepSelectApplication:
		if w.selected == nil && !w.defineNew {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed, "select an application or define a new one")
		}
	case StepDetailForm:
		return w.Detail.Validate()
	case StepImplementationForm:
		if w.Impl.Mode != ModeNewImplementation && w.selected == nil {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed,
				"a new application needs a new implementation")
		}
		return w.Impl.Validate(w.connectorType)
	}
	return nil
}

func (w *Wizard) stepError(want Step) error {
	return apperrors.NewValidationError(apperrors.CodeValidationFailed,
		fmt.Sprintf("wizard is at step %s, not %s", w.step, want))
}
