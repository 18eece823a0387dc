package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

func TestBulkSelectionRestoresLockedOrigins(t *testing.T) {
	l := NewOriginList("Austria", "France")

	shown := l.ApplyBulkSelection([]string{"Austria"})
	assert.Equal(t, []string{"Austria", "France"}, shown)
	assert.Equal(t, []string{"Austria", "France"}, l.Entries())
}

func TestBulkSelectionKeepsUserChoices(t *testing.T) {
	l := NewOriginList("Austria")
	l.Add("Spain")

	shown := l.ApplyBulkSelection([]string{"Germany", "Germany"})
	assert.Equal(t, []string{"Germany", "Austria"}, shown)
	assert.False(t, l.Contains("Spain"))
}

func TestRemoveLockedOrigin(t *testing.T) {
	l := NewOriginList("Austria")
	assert.True(t, l.Add("Spain"))
	assert.False(t, l.Add("Spain"))

	assert.False(t, l.Remove("Austria"))
	assert.True(t, l.IsLocked("Austria"))
	assert.True(t, l.Remove("Spain"))
	assert.False(t, l.IsLocked("Spain"))
	assert.Equal(t, []string{"Austria"}, l.Entries())
}

func TestAvailableOrigins(t *testing.T) {
	l := NewOriginList("Austria")
	assert.Equal(t, []string{"France"}, l.Available([]string{"Austria", "France"}))
}

func TestMatchCountry(t *testing.T) {
	countries := []models.Country{
		{Name: "Slovakia", Official: "Slovak Republic", Code: "SK"},
		{Name: "United States", Official: "United States of America", Code: "US"},
		{Name: "Niger", Official: "Republic of Niger", Code: "NE"},
		{Name: "Nigeria", Official: "Federal Republic of Nigeria", Code: "NG"},
	}

	tests := []struct {
		name, display, raw, want, code string
	}{
		{"exact display", "slovakia", "", "Slovakia", "SK"},
		{"raw name", "Slovenská republika", "SLOVAKIA", "Slovakia", "SK"},
		{"official name", "United States of America", "", "United States", "US"},
		{"exact beats substring", "Nigeria", "", "Nigeria", "NG"},
		{"substring", "USA United States", "", "United States", "US"},
		{"synthetic", "Atlantis", "", "Atlantis", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchCountry(tt.display, tt.raw, countries)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestMatchOriginsUsesDisplayName(t *testing.T) {
	countries := []models.Country{{Name: "Austria", Code: "AT"}}
	got := MatchOrigins([]models.CountryOfOrigin{{Name: "AUSTRIA", DisplayName: "Austria"}, {Name: "X"}}, countries)
	assert.Equal(t, []models.Country{{Name: "Austria", Code: "AT"}, {Name: "X"}}, got)
}
