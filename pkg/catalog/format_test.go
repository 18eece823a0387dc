package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

func TestFormatLifecycle(t *testing.T) {
	assert.Equal(t, "Requested", FormatLifecycle(models.LifecycleRequested))
	assert.Equal(t, "With error", FormatLifecycle(models.LifecycleWithError))
	assert.Equal(t, "Publishing...", FormatLifecycle(models.LifecycleInPublishProcess))
	assert.Equal(t, "DRAFT", FormatLifecycle("DRAFT"))
}

func TestFormatCapability(t *testing.T) {
	assert.Equal(t, "Script On Connector", FormatCapability("SCRIPT_ON_CONNECTOR"))
	assert.Equal(t, "Script on connector", FormatCapabilitySentence("SCRIPT_ON_CONNECTOR"))
	assert.Equal(t, "", FormatCapabilitySentence(""))
}

func TestFormatFramework(t *testing.T) {
	assert.Equal(t, "Java-based", FormatFramework("connid"))
	assert.Equal(t, "Low-code", FormatFramework("SCIM_REST"))
	assert.Equal(t, "Unknown", FormatFramework(""))
	assert.Equal(t, "OTHER", FormatFramework("OTHER"))
}

func TestTimeSinceUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(-d)
		return &v
	}
	day := 24 * time.Hour

	tests := []struct {
		t    *time.Time
		want string
	}{
		{nil, "Unknown"},
		{at(0), "Updated today"},
		{at(time.Hour), "Updated 1 day ago"},
		{at(3 * day), "Updated 3 days ago"},
		{at(45 * day), "Updated 1 month ago"},
		{at(400 * day), "Updated 1 year ago"},
		{at(800 * day), "Updated 2 years ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeSinceUpdate(tt.t, now))
	}
}
