package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/internal/version"
	"github.com/huanfeng/connhub-cli/pkg/client"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/utils"
	"github.com/huanfeng/connhub-cli/pkg/wizard"
)

// uploadOptions mirrors the wizard input. The interactive prompts fill the
// same struct the flags do.
type uploadOptions struct {
	nonInteractive bool

	connectorType  string
	applicationID  string
	newApplication bool

	displayName string
	description string
	category    string
	deployment  string
	origins     []string
	logo        string

	mode           string
	implementation string
	confirm        bool
	implName       string
	maintainer     string
	license        string
	implDesc       string
	browseLink     string
	ticketingLink  string
	buildFramework string
	checkoutLink   string
	pathToProject  string
	file           string
}

var uploadOpts uploadOptions

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a connector to the catalog",
	Long: `Publish a connector: choose the connector type, pick an existing
application or define a new one, describe the implementation and submit.

Without --non-interactive the wizard asks for every value; flags given on
the command line are used as defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		s, err := newUploadSession(ctx)
		if err != nil {
			return err
		}
		if uploadOpts.nonInteractive {
			err = s.runFlags(ctx, &uploadOpts)
		} else {
			err = s.runInteractive(ctx, &uploadOpts)
		}
		if errors.Is(err, errUploadCancelled) {
			fmt.Println(i18n.T("upload.cancelled"))
			return nil
		}
		if err != nil {
			return err
		}
		return s.submit(ctx, cmd)
	},
}

// uploadSession ties a wizard to the backend for one upload
type uploadSession struct {
	w      *wizard.Wizard
	apps   []models.Application
	api    *client.APIClient
	logos  *wizard.LogoProcessor
	steps  *utils.StepIndicator
	logger utils.Logger
	start  time.Time
}

func newUploadSession(ctx context.Context) (*uploadSession, error) {
	store, _ := loadCatalog(ctx, false)
	countries := newCountryService().Countries(ctx)
	logger := utils.GetGlobalLogger().WithField("component", "upload")

	s := &uploadSession{
		api:    newAPIClient(),
		logos:  wizard.NewLogoProcessor(cfg.Logo.MaxSizeBytes, cfg.Logo.Size),
		logger: logger,
		start:  time.Now(),
		steps: utils.NewStepIndicator(os.Stderr,
			i18n.T("upload.step.connectorType"),
			i18n.T("upload.step.application"),
			i18n.T("upload.step.detail"),
			i18n.T("upload.step.implementation"),
			i18n.T("upload.step.submit"),
		),
	}
	s.apps = store.Get()
	s.w = wizard.New(s.apps, wizard.WithCountries(countries), wizard.WithLogger(logger))
	return s, nil
}

// next validates the current step and shows the following one
func (s *uploadSession) next() error {
	if err := s.w.Next(); err != nil {
		return err
	}
	s.steps.Show(int(s.w.Step()))
	return nil
}

func (s *uploadSession) runFlags(ctx context.Context, o *uploadOptions) error {
	s.steps.Show(int(s.w.Step()))
	if err := s.applyConnectorType(o); err != nil {
		return err
	}
	if err := s.next(); err != nil {
		return err
	}
	if err := s.applyApplication(ctx, o); err != nil {
		return err
	}
	if err := s.next(); err != nil {
		return err
	}
	if err := s.applyDetail(o); err != nil {
		return err
	}
	if err := s.next(); err != nil {
		return err
	}
	if err := s.applyImplementation(o); err != nil {
		return err
	}
	return s.next()
}

func (s *uploadSession) applyConnectorType(o *uploadOptions) error {
	if o.connectorType == "" {
		return nil
	}
	ct, err := wizard.ParseConnectorType(o.connectorType)
	if err != nil {
		return apperrors.NewValidationError(apperrors.CodeValidationFailed, err.Error())
	}
	return s.w.SelectConnectorType(ct)
}

func (s *uploadSession) applyApplication(ctx context.Context, o *uploadOptions) error {
	switch {
	case o.applicationID != "":
		if err := s.w.SelectApplication(o.applicationID); err != nil {
			return err
		}
		s.loadImplementations(ctx)
	case o.newApplication:
		return s.w.DefineNew()
	default:
		return apperrors.NewValidationError(apperrors.CodeValidationFailed, i18n.T("upload.noApplication"))
	}
	return nil
}

// loadImplementations fetches what a new version can attach to. A failure
// leaves the list empty and only new implementations can be defined.
func (s *uploadSession) loadImplementations(ctx context.Context) {
	app := s.w.Selected()
	if app == nil {
		return
	}
	impls, err := s.api.ListImplementations(ctx, app.ID)
	if err != nil {
		s.logger.Warn("failed to load implementations of %s: %v", app.ID, err)
		return
	}
	s.w.SetImplementations(impls)
}

func (s *uploadSession) applyDetail(o *uploadOptions) error {
	d := s.w.Detail
	if o.displayName != "" {
		d.DisplayName = o.displayName
	}
	if o.description != "" && !d.SetDescription(o.description) {
		return apperrors.NewValidationError(apperrors.CodeValidationFailed,
			i18n.T("upload.descriptionTooLong", map[string]interface{}{"Max": wizard.MaxDescriptionLength}))
	}
	if o.category != "" {
		d.Category = o.category
	}
	if o.deployment != "" {
		dt, err := wizard.ParseDeploymentType(o.deployment)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed, err.Error())
		}
		d.DeploymentType = dt
	}
	for _, origin := range o.origins {
		d.Origins.Add(origin)
	}
	if o.logo != "" {
		data, err := os.ReadFile(o.logo)
		if err != nil {
			return apperrors.WrapError(err, apperrors.ErrorTypeFileSystem, apperrors.CodeValidationFailed,
				i18n.T("upload.readFailed", map[string]interface{}{"Path": o.logo}))
		}
		logo, err := s.logos.Process(filepath.Base(o.logo), data)
		if err != nil {
			return err
		}
		d.Logo = logo
	}
	return nil
}

func (s *uploadSession) applyImplementation(o *uploadOptions) error {
	f := s.w.Impl
	if o.implementation != "" {
		f.SelectImplementation(o.implementation)
		f.Confirmed = o.confirm
		if impl := s.w.Implementation(); impl != nil {
			prefillImplementation(f, impl)
		}
	}
	if o.mode != "" {
		m, err := wizard.ParseMode(o.mode)
		if err != nil {
			return apperrors.NewValidationError(apperrors.CodeValidationFailed, err.Error())
		}
		f.Mode = m
	}

	setIf(&f.DisplayName, o.implName)
	setIf(&f.Maintainer, o.maintainer)
	setIf(&f.License, o.license)
	setIf(&f.Description, o.implDesc)
	setIf(&f.BrowseLink, o.browseLink)
	setIf(&f.TicketingLink, o.ticketingLink)
	setIf(&f.BuildFramework, o.buildFramework)
	setIf(&f.CheckoutLink, o.checkoutLink)
	setIf(&f.PathToProject, o.pathToProject)

	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return apperrors.WrapError(err, apperrors.ErrorTypeFileSystem, apperrors.CodeValidationFailed,
				i18n.T("upload.readFailed", map[string]interface{}{"Path": o.file}))
		}
		uf := s.w.AttachFile(filepath.Base(o.file), data)
		if uf.Bundle != nil {
			fmt.Fprintln(os.Stderr, i18n.T("upload.bundle", map[string]interface{}{
				"Name":    uf.Bundle.BundleName,
				"Version": uf.Bundle.Version,
			}))
		}
	}
	return nil
}

// prefillImplementation copies the attached implementation into blank fields
func prefillImplementation(f *wizard.ImplementationForm, impl *models.Implementation) {
	setIf(&f.DisplayName, impl.DisplayName)
	setIf(&f.Maintainer, impl.Maintainer)
	setIf(&f.License, impl.License)
	setIf(&f.Description, impl.Description)
	setIf(&f.BrowseLink, impl.BrowseLink)
	setIf(&f.CheckoutLink, impl.CheckoutLink)
	setIf(&f.BuildFramework, impl.BuildFramework)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// submit publishes the upload. A duplicate version is reported as a
// warning. Other failures are saved to an error report so the payload
// is not lost.
func (s *uploadSession) submit(ctx context.Context, cmd *cobra.Command) error {
	res, err := s.w.Submit(ctx, s.api)
	if err == nil {
		s.steps.Show(int(wizard.StepSubmit))
		fmt.Println(i18n.T("upload.done", map[string]interface{}{"ID": res.UploadID}))
		return nil
	}

	if apperrors.HasCode(err, apperrors.CodeVersionExists) {
		fmt.Fprintln(os.Stderr, i18n.T("upload.versionExists", map[string]interface{}{"Version": s.w.Version()}))
		return nil
	}

	if apperrors.HasCode(err, apperrors.CodeSubmitFailed) {
		if path := s.saveReport(cmd, err); path != "" {
			fmt.Fprintln(os.Stderr, i18n.T("upload.reportSaved", map[string]interface{}{"Path": path}))
		}
	}
	return err
}

func (s *uploadSession) saveReport(cmd *cobra.Command, err error) string {
	opCtx := &apperrors.OperationContext{
		Command:  cmd.CommandPath(),
		Flags:    map[string]string{},
		Duration: time.Since(s.start),
	}
	cmd.Flags().Visit(func(f *pflag.Flag) { opCtx.Flags[f.Name] = f.Value.String() })
	if payload, perr := s.w.BuildPayload(); perr == nil {
		if data, merr := json.Marshal(payload); merr == nil {
			opCtx.Payload = data
		}
	}

	reporter := apperrors.NewErrorReporter(reportDir(), version.Short(), s.logger)
	path, serr := reporter.SaveReport(reporter.GenerateReport(err, opCtx))
	if serr != nil {
		s.logger.Warn("failed to save error report: %v", serr)
		return ""
	}
	return path
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	f := uploadCmd.Flags()
	o := &uploadOpts
	f.BoolVar(&o.nonInteractive, "non-interactive", false, "take every value from flags")

	f.StringVar(&o.connectorType, "connector-type", "", "evolveum-hosted, own-repo or java-based")
	f.StringVar(&o.applicationID, "application", "", "ID of the existing application")
	f.BoolVar(&o.newApplication, "new-application", false, "define a new application")

	f.StringVar(&o.displayName, "app-name", "", "application display name")
	f.StringVar(&o.description, "app-description", "", "application description")
	f.StringVar(&o.category, "app-category", "", "application category tag name")
	f.StringVar(&o.deployment, "deployment", "", "on-premise, cloud-based or both")
	f.StringSliceVar(&o.origins, "origin", nil, "country of origin (repeatable)")
	f.StringVar(&o.logo, "logo", "", "application logo image")

	f.StringVar(&o.mode, "mode", "", "new-version, new-implementation or edit-version")
	f.StringVar(&o.implementation, "implementation", "", "ID of the implementation a new version attaches to")
	f.BoolVar(&o.confirm, "confirm-version", false, "edit the details of the attached version")
	f.StringVar(&o.implName, "name", "", "implementation display name")
	f.StringVar(&o.maintainer, "maintainer", "", "maintainer")
	f.StringVar(&o.license, "license", "", "MIT, APACHE_2, BSD or EUPL")
	f.StringVar(&o.implDesc, "description", "", "implementation description")
	f.StringVar(&o.browseLink, "browse-link", "", "source browse link, e.g. .../tree/v1.3")
	f.StringVar(&o.ticketingLink, "ticketing-link", "", "issue tracker link")
	f.StringVar(&o.buildFramework, "build-framework", "", "MAVEN or GRADLE")
	f.StringVar(&o.checkoutLink, "checkout-link", "", "repository checkout link")
	f.StringVar(&o.pathToProject, "path-to-project", "", "project path inside the repository")
	f.StringVar(&o.file, "file", "", "connector bundle (.jar, .zip) or descriptor")
}
