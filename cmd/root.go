package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huanfeng/connhub-cli/internal/config"
	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/internal/version"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

var (
	cfgFile   string
	langFlag  string
	logLevel  string
	logFile   string
	logFormat string
	baseURL   string

	cfg *models.Config
)

var rootCmd = &cobra.Command{
	Use:   "connhub",
	Short: "connhub - browse and publish midPoint connectors",
	Long: `connhub is a command-line client for the midPoint integration catalog.
It lists and filters catalog applications, shows connector versions, records
votes and integration requests, and uploads new connectors.`,
	Version:           version.Short(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if l, ok := utils.GetGlobalLogger().(*utils.ZapLogger); ok {
			_ = l.Sync()
		}
	},
}

// setup loads configuration and initializes logging and error handling
func setup(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrorTypeConfiguration, apperrors.CodeConfigInvalid,
			i18n.T("errors.config")).WithSuggestion(i18n.T("errors.configHint"))
	}
	cfg = loaded

	level, err := utils.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return apperrors.NewConfigurationError(apperrors.CodeConfigInvalid, err.Error())
	}
	logCfg := &utils.LoggerConfig{
		Level:    level,
		Format:   utils.ParseLogFormat(cfg.Log.Format),
		Output:   os.Stderr,
		FilePath: cfg.Log.File,
	}
	if err := utils.InitGlobalLogger(logCfg); err != nil {
		return apperrors.WrapError(err, apperrors.ErrorTypeFileSystem, apperrors.CodeConfigInvalid, i18n.T("errors.logger"))
	}
	apperrors.InitGlobalErrorHandler(utils.GetGlobalLogger())

	utils.Debug("connhub %s, backend %s, language %s", version.Short(), cfg.API.BaseURL, i18n.CurrentLanguage())
	return nil
}

// Execute runs the root command
func Execute() {
	if err := i18n.Init(langFromArgs(os.Args[1:])); err != nil {
		fmt.Fprintf(os.Stderr, "i18n: %v\n", err)
	}
	applyCommandLocalization()

	if err := rootCmd.Execute(); err != nil {
		apperrors.Handle(err)
		apperrors.Display(os.Stderr, err)
		os.Exit(1)
	}
}

// langFromArgs finds --lang before flag parsing so help text is localized
func langFromArgs(args []string) string {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, "--lang="); ok {
			return v
		}
		if a == "--lang" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// reportDir is where failed submissions are saved
func reportDir() string {
	return filepath.Join(cfg.Cache.Dir, "reports")
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/connhub/connhub.yaml)")
	pf.StringVar(&langFlag, "lang", "", "interface language (en, sk)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: console, json")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this file")
	pf.StringVar(&baseURL, "base-url", "", "catalog backend URL")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = viper.BindPFlag("api.base_url", pf.Lookup("base-url"))
}
