package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanfeng/connhub-cli/internal/testutil"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

func TestDeploymentOptions(t *testing.T) {
	none := testutil.NewApplication("None")
	one := testutil.NewApplication("One", testutil.WithTag(models.TagCloudBased, models.TagTypeDeployment))
	two := testutil.NewApplication("Two",
		testutil.WithTag(models.TagOnPremise, models.TagTypeDeployment),
		testutil.WithTag(models.TagCloudBased, models.TagTypeDeployment))

	values := func(opts []DeploymentOption) []DeploymentType {
		var out []DeploymentType
		for _, o := range opts {
			out = append(out, o.Value)
		}
		return out
	}

	assert.Equal(t, []DeploymentType{DeploymentOnPremise, DeploymentCloudBased, DeploymentBoth}, values(DeploymentOptions(nil)))
	assert.Equal(t, []DeploymentType{DeploymentOnPremise, DeploymentCloudBased, DeploymentBoth}, values(DeploymentOptions(&none)))
	assert.Equal(t, []DeploymentType{DeploymentCloudBased, DeploymentBoth}, values(DeploymentOptions(&one)))
	assert.Equal(t, []DeploymentType{DeploymentBoth}, values(DeploymentOptions(&two)))

	assert.Equal(t, DeploymentOnPremise, DefaultDeployment(&none))
	assert.Equal(t, DeploymentCloudBased, DefaultDeployment(&one))
	assert.Equal(t, DeploymentBoth, DefaultDeployment(&two))
}

func TestDescriptionLimit(t *testing.T) {
	f := NewDetailForm()
	assert.True(t, f.SetDescription(strings.Repeat("é", MaxDescriptionLength)))
	assert.False(t, f.SetDescription(strings.Repeat("a", MaxDescriptionLength+1)))
	assert.Equal(t, strings.Repeat("é", MaxDescriptionLength), f.Description())
}

func TestNewApplicationRequiredFields(t *testing.T) {
	f := NewDetailForm()
	f.DeploymentType = ""
	assert.Equal(t, []Field{FieldDisplayName, FieldDescription, FieldCategory, FieldDeploymentType}, f.Missing())

	f.DisplayName = "Slack"
	f.SetDescription("Chat")
	f.Category = "communication"
	f.DeploymentType = DeploymentCloudBased
	assert.NoError(t, f.Validate())
}

func TestPopulateFrom(t *testing.T) {
	app := testutil.NewApplication("GitHub",
		testutil.WithCategory("devtools", "Developer tools"),
		testutil.WithTag(models.TagCloudBased, models.TagTypeDeployment),
		testutil.WithOrigins("United States"))
	countries := []models.Country{{Name: "United States", Code: "US"}}

	f := NewDetailForm()
	f.PopulateFrom(&app, countries)

	assert.Equal(t, "GitHub", f.DisplayName)
	assert.Equal(t, "GitHub connector", f.Description())
	assert.Equal(t, "devtools", f.Category)
	assert.Equal(t, DeploymentCloudBased, f.DeploymentType)
	require.Equal(t, []string{"United States"}, f.Origins.Entries())
	assert.True(t, f.Origins.IsLocked("United States"))
}

func TestDeploymentTags(t *testing.T) {
	f := NewDetailForm()
	f.DeploymentType = DeploymentBoth
	tags := f.DeploymentTags()
	require.Len(t, tags, 2)
	assert.Equal(t, models.TagOnPremise, tags[0].Name)
	assert.Equal(t, models.TagCloudBased, tags[1].Name)
}
