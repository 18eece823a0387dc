package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFromBrowseLink(t *testing.T) {
	tests := []struct {
		link string
		want string
		ok   bool
	}{
		{"https://github.com/Evolveum/connector-ldap/tree/v1.3", "1.3", true},
		{"https://github.com/Evolveum/connector-ldap/tree/v1.3/", "1.3", true},
		{"https://github.com/org/repo/releases/tag/2.0.1", "2.0.1", true},
		{"https://gitlab.com/org/repo/-/tree/v3.1.0-rc1", "3.1.0-rc1", true},
		{"https://github.com/org/repo/tree/main", "", false},
		{"https://github.com/org/repo", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, ok := VersionFromBrowseLink(tt.link)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	v, ok := NormalizeVersion("V2.4")
	assert.True(t, ok)
	assert.Equal(t, "2.4", v)

	_, ok = NormalizeVersion("v")
	assert.False(t, ok)
}
