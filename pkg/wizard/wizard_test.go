package wizard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/testutil"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

func catalogFixture() []models.Application {
	return []models.Application{
		testutil.NewApplication("LDAP", testutil.WithID("ldap"),
			testutil.WithCategory("directory", "Directory services"),
			testutil.WithTag(models.TagOnPremise, models.TagTypeDeployment),
			testutil.WithOrigins("Austria", "France")),
		testutil.NewApplication("LDAP Requested", testutil.WithID("ldap-req"), testutil.WithState(models.LifecycleRequested)),
		testutil.NewApplication("Slack", testutil.WithID("slack"), testutil.WithDescription("team chat")),
	}
}

var fixtureCountries = []models.Country{
	{Name: "Austria", Code: "AT"},
	{Name: "France", Code: "FR"},
}

type fakePublisher struct {
	exists     bool
	checkErr   error
	publishErr error
	published  *models.PublishPayload
	checked    [2]string
}

func (f *fakePublisher) VersionExists(_ context.Context, bundle, version string) (bool, error) {
	f.checked = [2]string{bundle, version}
	return f.exists, f.checkErr
}

func (f *fakePublisher) Publish(_ context.Context, p *models.PublishPayload) (string, error) {
	if f.publishErr != nil {
		return "", f.publishErr
	}
	f.published = p
	return "upload-1", nil
}

func TestSearchOnlyActive(t *testing.T) {
	w := New(catalogFixture())
	assert.Nil(t, w.Search("  "))

	got := w.Search("ldap")
	require.Len(t, got, 1)
	assert.Equal(t, "ldap", got[0].ID)

	got = w.Search("CHAT")
	require.Len(t, got, 1)
	assert.Equal(t, "slack", got[0].ID)
}

// existingAppWizard walks to the implementation form for the LDAP app
func existingAppWizard(t *testing.T, ct ConnectorType) *Wizard {
	t.Helper()
	w := New(catalogFixture(), WithCountries(fixtureCountries), WithLogger(testutil.Logger()))
	require.NoError(t, w.SelectConnectorType(ct))
	require.NoError(t, w.Next())
	require.Equal(t, StepSelectApplication, w.Step())

	require.NoError(t, w.SelectApplication("ldap"))
	require.NoError(t, w.Next())
	require.Equal(t, StepDetailForm, w.Step())
	require.NoError(t, w.Next())
	require.Equal(t, StepImplementationForm, w.Step())
	return w
}

func TestExistingApplicationFlow(t *testing.T) {
	w := existingAppWizard(t, ConnectorJavaBased)

	assert.Equal(t, "LDAP", w.Detail.DisplayName)
	assert.Equal(t, "directory", w.Detail.Category)
	assert.Equal(t, DeploymentOnPremise, w.Detail.DeploymentType)
	assert.Equal(t, []string{"Austria", "France"}, w.Detail.Origins.Entries())
	assert.Equal(t, ModeNewVersion, w.Impl.Mode)

	assert.False(t, w.CanAdvance())
	w.SetImplementations([]models.Implementation{{ID: "impl-1", DisplayName: "LDAP connector",
		BrowseLink: "https://github.com/Evolveum/connector-ldap/tree/v1.3"}})
	w.Impl.SelectImplementation("impl-1")
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, StepSubmit, w.Step())
	assert.Equal(t, "1.3", w.Version())
}

func TestSelectInactiveApplication(t *testing.T) {
	w := New(catalogFixture())
	require.NoError(t, w.Next())
	assert.Error(t, w.SelectApplication("ldap-req"))
	assert.True(t, apperrors.HasCode(w.SelectApplication("missing"), apperrors.CodeNotFound))
	assert.Error(t, w.Next())
}

func TestStepGuards(t *testing.T) {
	w := New(catalogFixture())
	assert.Error(t, w.SelectApplication("ldap"))
	assert.Error(t, w.DefineNew())
	require.NoError(t, w.Next())
	assert.Error(t, w.SelectConnectorType(ConnectorOwnRepo))

	w.Back()
	assert.Equal(t, StepSelectConnectorType, w.Step())
	w.Back()
	assert.Equal(t, StepSelectConnectorType, w.Step())
}

// newAppWizard walks to the submit step for a new own-repo application
func newAppWizard(t *testing.T) *Wizard {
	t.Helper()
	w := New(catalogFixture(), WithCountries(fixtureCountries))
	require.NoError(t, w.SelectConnectorType(ConnectorOwnRepo))
	require.NoError(t, w.Next())
	require.NoError(t, w.DefineNew())
	require.NoError(t, w.Next())

	assert.Error(t, w.Next(), "empty detail form must not advance")
	w.Detail.DisplayName = "Acme HR"
	w.Detail.SetDescription("HR system")
	w.Detail.Category = "directory"
	w.Detail.DeploymentType = DeploymentBoth
	w.Detail.Origins.Add("France")
	require.NoError(t, w.Next())
	assert.Equal(t, ModeNewImplementation, w.Impl.Mode)

	w.Impl.DisplayName = "X"
	w.Impl.Description = "Y"
	assert.Error(t, w.Next())
	w.Impl.License = "mit"
	w.Impl.BrowseLink = "https://github.com/acme/hr-connector/tree/v1.3"
	require.NoError(t, w.Next())
	require.Equal(t, StepSubmit, w.Step())
	return w
}

func TestBuildPayload(t *testing.T) {
	w := newAppWizard(t)
	p, err := w.BuildPayload()
	require.NoError(t, err)

	assert.Empty(t, p.Application.ID)
	assert.Equal(t, "Acme HR", p.Application.DisplayName)
	assert.Equal(t, []models.Country{{Name: "France", Code: "FR"}}, p.Application.Origins)
	require.Len(t, p.Application.Tags, 3)
	assert.Equal(t, models.Tag{Name: "directory", DisplayName: "Directory services", TagType: models.TagTypeCategory}, p.Application.Tags[0])

	impl := p.Implementation
	assert.Equal(t, "OWN_REPO", impl.ConnectorType)
	assert.Equal(t, "NEW_IMPLEMENTATION", impl.Mode)
	require.NotNil(t, impl.License)
	assert.Equal(t, "MIT", *impl.License)
	assert.Nil(t, impl.BuildFramework)
	assert.Nil(t, impl.Maintainer)
	assert.Equal(t, "1.3", impl.Version)
	assert.Empty(t, p.Files)
	assert.Nil(t, p.Bundle)
}

func TestSubmitSuccess(t *testing.T) {
	w := newAppWizard(t)
	pub := &fakePublisher{}

	res, err := w.Submit(context.Background(), pub)
	require.NoError(t, err)
	assert.Equal(t, "upload-1", res.UploadID)
	assert.Equal(t, [2]string{"X", "1.3"}, pub.checked)
	assert.Equal(t, StepDone, w.Step())
}

func TestSubmitDuplicateVersion(t *testing.T) {
	w := newAppWizard(t)
	pub := &fakePublisher{exists: true}

	_, err := w.Submit(context.Background(), pub)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeVersionExists))
	assert.False(t, apperrors.IsRetryable(err))
	assert.Nil(t, pub.published)
	assert.Equal(t, StepSubmit, w.Step())
	assert.Equal(t, "Acme HR", w.Detail.DisplayName)
}

func TestSubmitTransportErrorIsRetryable(t *testing.T) {
	w := newAppWizard(t)
	pub := &fakePublisher{publishErr: errors.New("connection reset")}

	_, err := w.Submit(context.Background(), pub)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeSubmitFailed))
	assert.True(t, apperrors.IsRetryable(err))
	assert.Equal(t, StepSubmit, w.Step())
	assert.Equal(t, "X", w.Impl.DisplayName)

	pub.publishErr = nil
	res, err := w.Submit(context.Background(), pub)
	require.NoError(t, err)
	assert.Equal(t, "upload-1", res.UploadID)
}

func TestSubmitClientErrorNotRetryable(t *testing.T) {
	w := newAppWizard(t)
	pub := &fakePublisher{publishErr: apperrors.FromStatus(http.StatusUnprocessableEntity, "bad payload")}

	_, err := w.Submit(context.Background(), pub)
	require.Error(t, err)
	assert.False(t, apperrors.IsRetryable(err))
}

func TestSubmitWithBundle(t *testing.T) {
	w := New(catalogFixture(), WithCountries(fixtureCountries))
	require.NoError(t, w.Next())
	require.NoError(t, w.DefineNew())
	w.Detail.DisplayName = "Acme"
	w.Detail.SetDescription("d")
	w.Detail.Category = "directory"
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.Equal(t, StepImplementationForm, w.Step())
	w.Impl.DisplayName = "Acme connector"
	w.Impl.Description = "d"
	assert.Error(t, w.Next(), "evolveum-hosted needs a file")

	jar := buildJar(t, "ConnectorBundle-Name: com.acme.conn\nConnectorBundle-Version: 2.1\n")
	f := w.AttachFile("acme.jar", jar)
	assert.False(t, f.Opaque())
	require.NoError(t, w.Next())

	pub := &fakePublisher{}
	res, err := w.Submit(context.Background(), pub)
	require.NoError(t, err)
	assert.Equal(t, [2]string{"com.acme.conn", "2.1"}, pub.checked)
	require.Len(t, res.Payload.Files, 1)
	assert.Equal(t, "acme.jar", res.Payload.Files[0].Path)
	assert.Equal(t, "2.1", res.Payload.Bundle.Version)
}

func TestSubmitOutsideSubmitStep(t *testing.T) {
	w := New(catalogFixture())
	_, err := w.Submit(context.Background(), &fakePublisher{})
	assert.Error(t, err)
}

func TestNewApplicationRejectsNewVersion(t *testing.T) {
	w := newAppWizard(t)
	w.Back()
	w.Impl.SelectImplementation("impl-1")
	assert.Error(t, w.Next())
}

func TestBackKeepsEditedDetails(t *testing.T) {
	w := existingAppWizard(t, ConnectorJavaBased)
	w.Back()
	require.Equal(t, StepDetailForm, w.Step())
	require.True(t, w.Detail.SetDescription("edited by user"))
	w.Detail.Origins.Add("Germany")

	w.Back()
	require.Equal(t, StepSelectApplication, w.Step())
	require.NoError(t, w.Next())
	assert.Equal(t, "edited by user", w.Detail.Description())
	assert.Equal(t, []string{"Austria", "France", "Germany"}, w.Detail.Origins.Entries())
}

func TestSelectingAnotherApplicationRepopulates(t *testing.T) {
	w := existingAppWizard(t, ConnectorJavaBased)
	w.Back()
	require.True(t, w.Detail.SetDescription("edited by user"))
	w.Back()
	require.NoError(t, w.SelectApplication("slack"))
	require.NoError(t, w.Next())
	assert.Equal(t, "Slack", w.Detail.DisplayName)
	assert.NotEqual(t, "edited by user", w.Detail.Description())
}
