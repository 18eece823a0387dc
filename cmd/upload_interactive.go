package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/wizard"
)

var errUploadCancelled = errors.New("upload cancelled")

// newApplicationChoice is the application select value for "define new"
const newApplicationChoice = "\x00new"

// runInteractive walks the wizard with prompts. Flag values are used as
// prompt defaults.
func (s *uploadSession) runInteractive(ctx context.Context, o *uploadOptions) error {
	s.steps.Show(int(s.w.Step()))

	if err := s.askConnectorType(o); err != nil {
		return err
	}
	if err := s.next(); err != nil {
		return err
	}
	if err := s.askApplication(ctx, o); err != nil {
		return err
	}
	if err := s.next(); err != nil {
		return err
	}
	if err := s.retry(func() error { return s.askDetail(o) }); err != nil {
		return err
	}
	if err := s.retry(func() error { return s.askImplementation(o) }); err != nil {
		return err
	}
	return s.confirmSubmit()
}

// retry reruns a form step until it validates and the wizard advances.
// Validation errors are shown and the entered values kept.
func (s *uploadSession) retry(ask func() error) error {
	for {
		err := ask()
		if err == nil {
			err = s.next()
		}
		if err == nil {
			return nil
		}
		if errors.Is(err, errUploadCancelled) {
			return err
		}
		ce, ok := apperrors.As(err)
		if !ok || ce.Type != apperrors.ErrorTypeValidation {
			return err
		}
		apperrors.Display(os.Stderr, err)
	}
}

// runForm maps a user abort to errUploadCancelled
func runForm(groups ...*huh.Group) error {
	if err := huh.NewForm(groups...).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errUploadCancelled
		}
		return err
	}
	return nil
}

func (s *uploadSession) askConnectorType(o *uploadOptions) error {
	if o.connectorType == "" {
		o.connectorType = string(s.w.ConnectorType())
	}
	labels := map[wizard.ConnectorType]string{
		wizard.ConnectorEvolveumHosted: i18n.T("upload.connectorType.evolveumHosted"),
		wizard.ConnectorOwnRepo:        i18n.T("upload.connectorType.ownRepo"),
		wizard.ConnectorJavaBased:      i18n.T("upload.connectorType.javaBased"),
	}
	options := make([]huh.Option[string], 0, len(wizard.ConnectorTypes))
	for _, ct := range wizard.ConnectorTypes {
		options = append(options, huh.NewOption(labels[ct], string(ct)))
	}

	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(i18n.T("upload.connectorType.title")).
			Options(options...).
			Value(&o.connectorType),
	))
	if err != nil {
		return err
	}
	return s.applyConnectorType(o)
}

func (s *uploadSession) askApplication(ctx context.Context, o *uploadOptions) error {
	if o.newApplication {
		return s.w.DefineNew()
	}
	if o.applicationID != "" {
		return s.applyApplication(ctx, o)
	}

	for {
		var query string
		err := runForm(huh.NewGroup(
			huh.NewInput().
				Title(i18n.T("upload.search.title")).
				Description(i18n.T("upload.search.description")).
				Value(&query),
		))
		if err != nil {
			return err
		}

		results := s.w.Search(query)
		options := make([]huh.Option[string], 0, len(results)+1)
		for _, app := range results {
			options = append(options, huh.NewOption(app.DisplayName, app.ID))
		}
		options = append(options, huh.NewOption(i18n.T("upload.search.defineNew"), newApplicationChoice))

		choice := newApplicationChoice
		if len(results) > 0 {
			choice = results[0].ID
		}
		err = runForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(i18n.T("upload.search.results", map[string]interface{}{"Count": len(results)})).
				Options(options...).
				Value(&choice),
		))
		if err != nil {
			return err
		}

		if choice == newApplicationChoice {
			o.newApplication = true
		} else {
			o.applicationID = choice
		}
		if err := s.applyApplication(ctx, o); err != nil {
			apperrors.Display(os.Stderr, err)
			o.applicationID, o.newApplication = "", false
			continue
		}
		return nil
	}
}

// categoryOptions lists the CATEGORY tags known from the catalog
func (s *uploadSession) categoryOptions(current string) []huh.Option[string] {
	seen := map[string]models.Tag{}
	for _, app := range s.apps {
		for _, c := range app.Categories {
			if c.Name != "" && (c.TagType == "" || c.TagType == models.TagTypeCategory) {
				seen[c.Name] = c
			}
		}
	}
	if current != "" {
		if _, ok := seen[current]; !ok {
			seen[current] = models.Tag{Name: current, DisplayName: current}
		}
	}
	tags := make([]models.Tag, 0, len(seen))
	for _, t := range seen {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tagLabel(tags[i]) < tagLabel(tags[j]) })

	options := make([]huh.Option[string], 0, len(tags))
	for _, t := range tags {
		options = append(options, huh.NewOption(tagLabel(t), t.Name))
	}
	return options
}

func tagLabel(t models.Tag) string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Name
}

func (s *uploadSession) askDetail(o *uploadOptions) error {
	d := s.w.Detail
	// flag values win over the pre-populated ones on the first pass only
	if err := s.applyDetail(o); err != nil {
		apperrors.Display(os.Stderr, err)
	}
	o.displayName, o.description, o.category, o.deployment, o.logo = "", "", "", "", ""
	o.origins = nil

	description := d.Description()
	deployment := string(d.DeploymentType)
	var logoPath string

	deployOptions := make([]huh.Option[string], 0, 3)
	for _, opt := range wizard.DeploymentOptions(s.w.Selected()) {
		deployOptions = append(deployOptions, huh.NewOption(opt.Label, string(opt.Value)))
	}

	selected := d.Origins.Entries()
	isSelected := make(map[string]bool, len(selected))
	for _, e := range selected {
		isSelected[e] = true
	}
	names := wizard.CountryNames(s.w.Countries())
	for _, e := range selected {
		if !contains(names, e) {
			names = append(names, e)
		}
	}
	originOptions := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		originOptions = append(originOptions, huh.NewOption(n, n).Selected(isSelected[n]))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title(i18n.T("upload.detail.name")).
			Value(&d.DisplayName),
		huh.NewText().
			Title(i18n.T("upload.detail.description")).
			CharLimit(wizard.MaxDescriptionLength).
			Validate(func(v string) error {
				if utf8.RuneCountInString(v) > wizard.MaxDescriptionLength {
					return errors.New(i18n.T("upload.descriptionTooLong",
						map[string]interface{}{"Max": wizard.MaxDescriptionLength}))
				}
				return nil
			}).
			Value(&description),
	}
	if categories := s.categoryOptions(d.Category); len(categories) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title(i18n.T("upload.detail.category")).
			Options(categories...).
			Value(&d.Category))
	} else {
		fields = append(fields, huh.NewInput().
			Title(i18n.T("upload.detail.category")).
			Value(&d.Category))
	}
	fields = append(fields,
		huh.NewSelect[string]().
			Title(i18n.T("upload.detail.deployment")).
			Options(deployOptions...).
			Value(&deployment),
	)
	if len(originOptions) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title(i18n.T("upload.detail.origins")).
			Description(i18n.T("upload.detail.originsHint")).
			Options(originOptions...).
			Filterable(true).
			Height(10).
			Value(&selected))
	}
	fields = append(fields, huh.NewInput().
		Title(i18n.T("upload.detail.logo")).
		Value(&logoPath))

	if err := runForm(huh.NewGroup(fields...)); err != nil {
		return err
	}

	d.SetDescription(description)
	if dt, err := wizard.ParseDeploymentType(deployment); err == nil {
		d.DeploymentType = dt
	}
	if restored := d.Origins.ApplyBulkSelection(selected); len(restored) > len(selected) {
		fmt.Fprintln(os.Stderr, i18n.T("upload.detail.originsLocked"))
	}
	if strings.TrimSpace(logoPath) != "" {
		return s.applyDetail(&uploadOptions{logo: strings.TrimSpace(logoPath)})
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func (s *uploadSession) askImplementation(o *uploadOptions) error {
	f := s.w.Impl
	if o.implementation != "" || o.mode != "" || o.file != "" {
		if err := s.applyImplementation(o); err != nil {
			apperrors.Display(os.Stderr, err)
		}
		o.implementation, o.mode, o.file = "", "", ""
	}

	impls := s.w.Implementations()
	if s.w.Selected() != nil && len(impls) > 0 {
		mode := string(f.Mode)
		err := runForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(i18n.T("upload.impl.mode")).
				Options(
					huh.NewOption(i18n.T("upload.impl.modeNewVersion"), string(wizard.ModeNewVersion)),
					huh.NewOption(i18n.T("upload.impl.modeNewImplementation"), string(wizard.ModeNewImplementation)),
				).
				Value(&mode),
		))
		if err != nil {
			return err
		}
		f.Mode = wizard.Mode(mode)

		if f.Mode == wizard.ModeNewVersion {
			if err := s.askVersionTarget(impls); err != nil {
				return err
			}
			if !f.Confirmed {
				return s.askFile()
			}
		}
	} else {
		f.Mode = wizard.ModeNewImplementation
	}

	return s.askImplementationFields()
}

// askVersionTarget picks the implementation a new version attaches to
func (s *uploadSession) askVersionTarget(impls []models.Implementation) error {
	f := s.w.Impl
	target := f.SelectedImplementation
	if target == "" {
		target = impls[0].ID
	}
	confirmed := f.Confirmed
	options := make([]huh.Option[string], 0, len(impls))
	for _, impl := range impls {
		label := impl.DisplayName
		if impl.Version != "" {
			label += " (" + impl.Version + ")"
		}
		options = append(options, huh.NewOption(label, impl.ID))
	}

	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(i18n.T("upload.impl.target")).
			Options(options...).
			Value(&target),
		huh.NewConfirm().
			Title(i18n.T("upload.impl.confirm")).
			Description(i18n.T("upload.impl.confirmHint")).
			Value(&confirmed),
	))
	if err != nil {
		return err
	}

	f.SelectImplementation(target)
	f.Confirmed = confirmed
	if impl := s.w.Implementation(); impl != nil {
		prefillImplementation(f, impl)
	}
	return nil
}

func (s *uploadSession) askImplementationFields() error {
	f := s.w.Impl
	required := map[wizard.Field]bool{}
	for _, field := range wizard.RequiredFields(s.w.ConnectorType(), f.EffectiveMode()) {
		required[field] = true
	}
	title := func(id string, field wizard.Field) string {
		t := i18n.T(id)
		if required[field] {
			t += " *"
		}
		return t
	}

	fields := []huh.Field{
		huh.NewInput().Title(title("upload.impl.name", wizard.FieldDisplayName)).Value(&f.DisplayName),
		huh.NewInput().Title(i18n.T("upload.impl.maintainer")).Value(&f.Maintainer),
		huh.NewSelect[string]().
			Title(title("upload.impl.license", wizard.FieldLicense)).
			Options(enumOptions(wizard.LicenseOptions)...).
			Value(&f.License),
		huh.NewText().Title(title("upload.impl.description", wizard.FieldDescription)).Value(&f.Description),
	}
	if s.w.ConnectorType() != wizard.ConnectorEvolveumHosted {
		fields = append(fields,
			huh.NewInput().Title(title("upload.impl.browseLink", wizard.FieldBrowseLink)).Value(&f.BrowseLink),
			huh.NewInput().Title(i18n.T("upload.impl.ticketingLink")).Value(&f.TicketingLink),
		)
	}
	if s.w.ConnectorType() == wizard.ConnectorJavaBased {
		fields = append(fields,
			huh.NewSelect[string]().
				Title(title("upload.impl.buildFramework", wizard.FieldBuildFramework)).
				Options(enumOptions(wizard.BuildFrameworkOptions)...).
				Value(&f.BuildFramework),
			huh.NewInput().Title(title("upload.impl.checkoutLink", wizard.FieldCheckoutLink)).Value(&f.CheckoutLink),
			huh.NewInput().Title(i18n.T("upload.impl.pathToProject")).Value(&f.PathToProject),
		)
	}
	if err := runForm(huh.NewGroup(fields...)); err != nil {
		return err
	}
	if s.w.ConnectorType() == wizard.ConnectorEvolveumHosted || s.w.File == nil {
		return s.askFile()
	}
	return nil
}

// enumOptions prepends an empty choice to a fixed option list
func enumOptions(values []string) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("-", "")}
	for _, v := range values {
		options = append(options, huh.NewOption(v, v))
	}
	return options
}

func (s *uploadSession) askFile() error {
	var path string
	err := runForm(huh.NewGroup(
		huh.NewInput().
			Title(i18n.T("upload.impl.file")).
			Description(i18n.T("upload.impl.fileHint")).
			Value(&path),
	))
	if err != nil {
		return err
	}
	if path = strings.TrimSpace(path); path == "" {
		return nil
	}
	return s.applyImplementation(&uploadOptions{file: path})
}

func (s *uploadSession) confirmSubmit() error {
	payload, err := s.w.BuildPayload()
	if err != nil {
		return err
	}
	ok := true
	summary := i18n.T("upload.summary", map[string]interface{}{
		"Application": payload.Application.DisplayName,
		"Mode":        payload.Implementation.Mode,
		"Version":     dash(payload.Implementation.Version),
		"Files":       len(payload.Files),
	})
	err = runForm(huh.NewGroup(
		huh.NewConfirm().
			Title(i18n.T("upload.confirm")).
			Description(summary).
			Value(&ok),
	))
	if err != nil {
		return err
	}
	if !ok {
		return errUploadCancelled
	}
	return nil
}
