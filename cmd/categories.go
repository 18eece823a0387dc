package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show application counts per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		api := newAPIClient()

		counts, err := api.CategoryCounts(ctx)
		if err != nil {
			// the list stays usable without counts
			fmt.Fprintln(os.Stderr, i18n.T("categories.loadWarning", map[string]interface{}{"Error": err.Error()}))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tNAME\tAPPLICATIONS")
		for _, c := range counts {
			fmt.Fprintf(w, "%s\t%s\t%d\n", c.DisplayName, c.Name, c.Count)
		}
		w.Flush()

		if total, err := api.TotalDownloads(ctx); err == nil {
			fmt.Println()
			fmt.Println(i18n.T("categories.downloads", map[string]interface{}{"Downloads": humanize.Comma(total)}))
		} else {
			utils.Debug("total downloads unavailable: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
