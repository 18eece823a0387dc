package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/catalog"
)

var facetsJSON bool

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Show filter values with application counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		store, _ := loadCatalog(ctx, false)

		facets := catalog.BuildFacets(store.Get())
		if facetsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(facets)
		}

		fmt.Println(i18n.T("facets.summary", map[string]interface{}{
			"Total": facets.Total, "Active": facets.Active, "Trending": facets.Trending,
		}))
		printFacetSection(os.Stdout, i18n.T("facets.categories"), facets.Categories)
		printFacetSection(os.Stdout, i18n.T("facets.capabilities"), facets.Capabilities)
		printFacetSection(os.Stdout, i18n.T("facets.statuses"), facets.Statuses)
		printFacetSection(os.Stdout, i18n.T("facets.midpointVersions"), facets.MidpointVersions)
		return nil
	},
}

func printFacetSection(out io.Writer, title string, counts []catalog.FacetCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(out, "\n=== %s ===\n", title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%s\t%d\n", c.Name, c.DisplayName, c.Count)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(facetsCmd)
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "print JSON")
}
