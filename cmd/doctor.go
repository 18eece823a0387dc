package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/huanfeng/connhub-cli/internal/config"
	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/internal/version"
	"github.com/huanfeng/connhub-cli/pkg/system"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

var doctorOffline bool

// doctorReport collects the outcome of all checks
type doctorReport struct {
	issues      []string
	suggestions []string
}

func (r *doctorReport) fail(issue string, suggestions ...string) {
	r.issues = append(r.issues, issue)
	r.suggestions = append(r.suggestions, suggestions...)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and the connection to the catalog",
	Long: `The doctor command checks that connhub can work:

- the configuration is valid
- the cache and report directories are writable and have free space
- the catalog backend and the country list are reachable`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.GetGlobalLogger()
		report := &doctorReport{}

		fmt.Println(i18n.T("doctor.title"))
		fmt.Println(strings.Repeat("=", 50))

		fmt.Println("\n" + i18n.T("doctor.configuration"))
		checkConfiguration(report)

		fmt.Println("\n" + i18n.T("doctor.directories"))
		checkDirectories(system.NewResourceChecker(logger), report)

		if !doctorOffline {
			fmt.Println("\n" + i18n.T("doctor.network"))
			ctx, cancel := commandContext()
			defer cancel()
			checker := system.NewNetworkChecker(logger, version.UserAgent(cfg.API.UserAgent))
			checker.SetTimeout(cfg.API.Timeout)
			checkNetwork(checker.CheckEndpoints(ctx, doctorEndpoints()), report)
		}

		fmt.Println("\n" + strings.Repeat("=", 50))
		if len(report.issues) == 0 {
			fmt.Println(i18n.T("doctor.allPassed"))
			return nil
		}

		fmt.Println(i18n.T("doctor.issues", map[string]interface{}{"Count": len(report.issues)}))
		for i, issue := range report.issues {
			fmt.Printf("%d. %s\n", i+1, issue)
		}
		if len(report.suggestions) > 0 {
			fmt.Println("\n" + i18n.T("doctor.suggestions"))
			for i, s := range report.suggestions {
				fmt.Printf("%d. %s\n", i+1, s)
			}
		}
		return apperrors.NewConfigurationError(apperrors.CodeConfigInvalid, i18n.T("doctor.failed"))
	},
}

func checkConfiguration(report *doctorReport) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.DefaultConfigDir(), "connhub.yaml")
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("   ⚠️  %s\n", i18n.T("doctor.configMissing", map[string]interface{}{"Path": path}))
	} else {
		fmt.Printf("   ✅ %s\n", i18n.T("doctor.configFound", map[string]interface{}{"Path": path}))
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Printf("   ❌ %v\n", err)
		report.fail(err.Error(), i18n.T("errors.configHint"))
		return
	}
	fmt.Printf("   ✅ %s\n", i18n.T("doctor.configValid", map[string]interface{}{"URL": cfg.API.BaseURL}))

	if strings.TrimSpace(cfg.User.Name) == "" {
		fmt.Printf("   ⚠️  %s\n", i18n.T("doctor.noUser"))
	}
}

func checkDirectories(rc *system.ResourceChecker, report *doctorReport) {
	for _, dir := range []string{cfg.Cache.Dir, reportDir()} {
		status := rc.CheckDirectory(dir)
		if !status.OK() {
			fmt.Printf("   ❌ %s: %s\n", status.Path, status.Error)
			report.fail(i18n.T("doctor.dirNotWritable", map[string]interface{}{"Path": status.Path}),
				i18n.T("doctor.dirHint"))
			continue
		}
		free := "?"
		if status.Usage != nil {
			free = humanize.Bytes(status.Usage.Available)
		}
		fmt.Printf("   ✅ %s (%s)\n", status.Path, i18n.T("doctor.free", map[string]interface{}{"Free": free}))
		if status.Warning != "" {
			fmt.Printf("   ⚠️  %s\n", status.Warning)
		}
	}
}

func doctorEndpoints() []system.Endpoint {
	return []system.Endpoint{
		{Name: "catalog", URL: strings.TrimRight(cfg.API.BaseURL, "/") + "/applications", Required: true},
		{Name: "countries", URL: cfg.Countries.URL},
	}
}

func checkNetwork(results []system.EndpointResult, report *doctorReport) {
	for _, r := range results {
		switch {
		case r.Reachable:
			fmt.Printf("   ✅ %s: %s (%dms)\n", r.Endpoint.Name, r.Endpoint.URL, r.Latency.Milliseconds())
		case r.Endpoint.Required:
			fmt.Printf("   ❌ %s: %s\n", r.Endpoint.Name, r.Error)
			report.fail(i18n.T("doctor.unreachable", map[string]interface{}{"Name": r.Endpoint.Name}))
		default:
			fmt.Printf("   ⚠️  %s: %s\n", r.Endpoint.Name, r.Error)
		}
	}
	report.suggestions = append(report.suggestions, system.Suggestions(results)...)
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorOffline, "offline", false, "skip the network checks")
}
