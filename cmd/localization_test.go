package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/huanfeng/connhub-cli/internal/i18n"
)

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "json", flagKey("json"))
	assert.Equal(t, "midpointVersion", flagKey("midpoint-version"))
	assert.Equal(t, "nonInteractive", flagKey("non-interactive"))
	assert.Equal(t, "baseUrl", flagKey("base-url"))
}

func TestLangFromArgs(t *testing.T) {
	assert.Equal(t, "sk", langFromArgs([]string{"list", "--lang", "sk"}))
	assert.Equal(t, "en", langFromArgs([]string{"--lang=en", "info", "x"}))
	assert.Equal(t, "", langFromArgs([]string{"list", "--lang"}))
}

func TestEveryCommandAndFlagIsLocalized(t *testing.T) {
	t.Setenv("CONNHUB_LANG", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
	assert.NoError(t, i18n.Init("en"))
	applyCommandLocalization()

	for key, c := range localizedCommands() {
		_, ok := translated("cmd." + key + ".short")
		assert.True(t, ok, "command %s has no translated short text", c.Name())
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Name == "help" {
				return
			}
			_, ok := translated("flags." + key + "." + flagKey(f.Name))
			assert.True(t, ok, "flag %s --%s has no translation", c.Name(), f.Name)
		})
	}
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_, ok := translated("flags." + flagKey(f.Name))
		assert.True(t, ok, "flag --%s has no translation", f.Name)
	})
}
