package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/catalog"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

var (
	infoCapabilities     []string
	infoMidpointVersions []string
	infoJSON             bool
)

var infoCmd = &cobra.Command{
	Use:   "info <application-id>",
	Short: "Show an application and its connector versions",
	Long: `Show an application with its connector versions, grouped into active
and other versions by Evolveum and by the community.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		api := newAPIClient()
		detail, err := api.GetApplication(ctx, args[0])
		if err != nil {
			return err
		}

		filter := catalog.VersionFilter{
			Capabilities:     upperAll(infoCapabilities),
			MidpointVersions: infoMidpointVersions,
		}
		groups := catalog.GroupVersions(detail.ImplementationVersions, filter)

		if infoJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				*models.ApplicationDetail
				Groups catalog.VersionGroups `json:"groups"`
			}{detail, groups})
		}

		downloads, err := api.ApplicationDownloads(ctx, detail.ID)
		if err != nil {
			utils.Debug("download count unavailable: %v", err)
			downloads = -1
		}
		printDetail(os.Stdout, detail, downloads, time.Now())
		printVersionGroups(os.Stdout, groups, filter)
		return nil
	},
}

func printDetail(w io.Writer, d *models.ApplicationDetail, downloads int64, now time.Time) {
	fmt.Fprintf(w, "=== %s ===\n\n", d.DisplayName)
	fmt.Fprintf(w, "%s: %s\n", i18n.T("info.id"), d.ID)
	fmt.Fprintf(w, "%s: %s\n", i18n.T("info.status"), catalog.FormatLifecycle(d.LifecycleState))
	if d.RiskLevel != "" {
		fmt.Fprintf(w, "%s: %s\n", i18n.T("info.risk"), d.RiskLevel)
	}
	fmt.Fprintf(w, "%s\n", catalog.TimeSinceUpdate(d.LastModified, now))
	if downloads >= 0 {
		fmt.Fprintf(w, "%s: %s\n", i18n.T("info.downloads"), humanize.Comma(downloads))
	}
	if d.Description != "" {
		fmt.Fprintf(w, "\n%s\n", d.Description)
	}
	if len(d.Categories) > 0 {
		fmt.Fprintf(w, "\n%s: %s\n", i18n.T("info.categories"), tagNames(d.Categories))
	}
	if len(d.Tags) > 0 {
		fmt.Fprintf(w, "%s: %s\n", i18n.T("info.tags"), tagNames(d.Tags))
	}
	if len(d.Origins) > 0 {
		names := make([]string, 0, len(d.Origins))
		for _, o := range d.Origins {
			names = append(names, o.DisplayName)
		}
		fmt.Fprintf(w, "%s: %s\n", i18n.T("info.origins"), strings.Join(names, ", "))
	}
	if caps := catalog.VisibleCapabilities(d.Capabilities); len(caps) > 0 {
		labels := make([]string, 0, len(caps))
		for _, c := range caps {
			labels = append(labels, catalog.FormatCapability(c))
		}
		fmt.Fprintf(w, "%s: %s\n", i18n.T("info.capabilities"), strings.Join(labels, ", "))
	}
	if versions := catalog.DetailMidpointVersions(d); len(versions) > 0 {
		fmt.Fprintf(w, "%s: %s\n", i18n.T("info.midpointVersions"), strings.Join(versions, ", "))
	}
	if d.RequestID != nil {
		fmt.Fprintf(w, "\n%s\n", i18n.T("info.requested", map[string]interface{}{"ID": *d.RequestID}))
	}
}

func printVersionGroups(out io.Writer, g catalog.VersionGroups, filter catalog.VersionFilter) {
	sections := []struct {
		title    string
		versions []models.ImplementationVersion
	}{
		{i18n.T("info.activeEvolveum"), g.ActiveEvolveum},
		{i18n.T("info.activeCommunity"), g.ActiveCommunity},
		{i18n.T("info.otherEvolveum"), g.OtherEvolveum},
		{i18n.T("info.otherCommunity"), g.OtherCommunity},
	}

	total := 0
	for _, s := range sections {
		if len(s.versions) == 0 {
			continue
		}
		total += len(s.versions)
		fmt.Fprintf(out, "\n=== %s (%d) ===\n", s.title, len(s.versions))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tMIDPOINT\tFRAMEWORK\tAUTHOR\tRELEASED\tTAGS")
		for _, v := range s.versions {
			released := "-"
			if v.ReleasedDate != nil {
				released = v.ReleasedDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				v.ConnectorVersion, dash(v.MidpointVersion), catalog.FormatFramework(v.Framework),
				dash(v.Author), released, strings.Join(catalog.VisibleTags(v.ImplementationTags), ", "))
		}
		w.Flush()
	}
	if total == 0 {
		if filter.IsEmpty() {
			fmt.Fprintf(out, "\n%s\n", i18n.T("info.noVersions"))
		} else {
			fmt.Fprintf(out, "\n%s\n", i18n.T("info.noMatchingVersions"))
		}
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringSliceVar(&infoCapabilities, "capability", nil, "only versions with this capability (repeatable)")
	infoCmd.Flags().StringSliceVar(&infoMidpointVersions, "midpoint-version", nil, "only versions for this midPoint version (repeatable)")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "print JSON")
}
