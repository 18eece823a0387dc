package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/huanfeng/connhub-cli/internal/i18n"
)

// applyCommandLocalization updates command and flag descriptions after i18n is initialized.
// Built-in English text stays when a message is missing.
func applyCommandLocalization() {
	for key, c := range localizedCommands() {
		localizeCommand(c, key)
		localizeFlags(c.Flags(), "flags."+key)
	}
	localizeFlags(rootCmd.PersistentFlags(), "flags")
}

// localizedCommands maps message key prefixes to commands
func localizedCommands() map[string]*cobra.Command {
	return map[string]*cobra.Command{
		"root":       rootCmd,
		"list":       listCmd,
		"info":       infoCmd,
		"facets":     facetsCmd,
		"categories": categoriesCmd,
		"vote":       voteCmd,
		"request":    requestCmd,
		"upload":     uploadCmd,
		"cache":      cacheCmd,
		"cacheStats": cacheStatsCmd,
		"cacheClean": cacheCleanCmd,
		"cacheClear": cacheClearCmd,
		"config":     configCmd,
		"configInit": configInitCmd,
		"configShow": configShowCmd,
		"version":    versionCmd,
		"doctor":     doctorCmd,
	}
}

func localizeCommand(c *cobra.Command, key string) {
	if msg, ok := translated("cmd." + key + ".short"); ok {
		c.Short = msg
	}
	if msg, ok := translated("cmd." + key + ".long"); ok {
		c.Long = msg
	}
}

func localizeFlags(fs *pflag.FlagSet, prefix string) {
	fs.VisitAll(func(f *pflag.Flag) {
		if msg, ok := translated(prefix + "." + flagKey(f.Name)); ok {
			f.Usage = msg
		}
	})
}

// translated reports whether id has a message in the current language
func translated(id string) (string, bool) {
	msg := i18n.T(id)
	return msg, msg != id
}

// flagKey turns a flag name such as midpoint-version into midpointVersion
func flagKey(name string) string {
	parts := strings.Split(name, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
