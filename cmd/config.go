package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/huanfeng/connhub-cli/internal/config"
	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/i18n"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented configuration template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(config.DefaultConfigDir(), "connhub.yaml")
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return apperrors.NewConflictError(apperrors.CodeConfigInvalid,
				i18n.T("config.exists", map[string]interface{}{"Path": path})).
				WithSuggestion(i18n.T("config.existsHint"))
		}
		if err := config.SaveTemplate(path); err != nil {
			return apperrors.WrapError(err, apperrors.ErrorTypeFileSystem, apperrors.CodeConfigInvalid,
				i18n.T("config.writeFailed", map[string]interface{}{"Path": path}))
		}
		cmd.Println(i18n.T("config.written", map[string]interface{}{"Path": path}))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}
