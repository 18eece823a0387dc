package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/catalog"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

var (
	listQuery            string
	listTab              string
	listCategories       []string
	listCapabilities     []string
	listStatuses         []string
	listMidpointVersions []string
	listTrending         bool
	listSort             string
	listPage             int
	listPageSize         int
	listFormat           string
	listRefresh          bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog applications",
	Long: `List catalog applications with search, filters, sorting and paging.
Values within one filter are alternatives; different filters must all match.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sortKey := catalog.SortKey(cfg.View.Sort)
		if cmd.Flags().Changed("sort") {
			sortKey = catalog.SortKey(listSort)
		}
		key, err := catalog.ParseSortKey(string(sortKey))
		if err != nil {
			return err
		}
		pageSize := cfg.View.PageSize
		if listPageSize > 0 {
			pageSize = listPageSize
		}

		ctx, cancel := commandContext()
		defer cancel()
		store, _ := loadCatalog(ctx, listRefresh)

		view := catalog.NewListView(store,
			catalog.WithPageSize(pageSize),
			catalog.WithSortKey(key),
			catalog.WithLocale(cfg.View.Locale))
		defer view.Close()

		view.SetQuery(listQuery)
		view.SetTab(listTab)
		view.SetFilters(catalog.FilterState{
			Trending:         listTrending,
			Categories:       listCategories,
			Capabilities:     upperAll(listCapabilities),
			AppStatus:        upperAll(listStatuses),
			MidpointVersions: listMidpointVersions,
		})
		if listPage > 1 {
			view.GoToPage(listPage - 1)
		}

		page := view.Page()
		switch listFormat {
		case "json":
			return printListJSON(os.Stdout, page)
		case "table":
			printListTable(os.Stdout, page)
		case "csv":
			return printListCSV(os.Stdout, page)
		default:
			printListDefault(os.Stdout, page)
		}

		if featured := view.Featured(); len(featured) > 0 && listFormat != "json" && listFormat != "csv" {
			fmt.Println(i18n.T("list.featured", map[string]interface{}{"Count": len(featured)}))
		}
		if page.Count > 0 && listFormat != "json" && listFormat != "csv" {
			fmt.Println(i18n.T("list.page", map[string]interface{}{
				"Page": page.Index + 1, "Pages": page.Count, "Total": page.Total,
			}))
		}
		return nil
	},
}

func upperAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(v), "-", "_")))
	}
	return out
}

func printListDefault(w io.Writer, page catalog.Page[models.Application]) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, i18n.T("list.empty"))
		return
	}
	for _, app := range page.Items {
		marker := " "
		if catalog.IsTrending(&app) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s  [%s]\n", marker, app.DisplayName, catalog.FormatLifecycle(app.LifecycleState))
		fmt.Fprintf(w, "    %s: %s\n", i18n.T("list.id"), app.ID)
		if app.Description != "" {
			fmt.Fprintf(w, "    %s\n", truncate(app.Description, 100))
		}
		if names := tagNames(app.Categories); names != "" {
			fmt.Fprintf(w, "    %s: %s\n", i18n.T("list.categories"), names)
		}
		if app.RequestID != nil {
			fmt.Fprintf(w, "    %s\n", i18n.T("list.request", map[string]interface{}{
				"ID": *app.RequestID, "Count": app.VoteCount,
			}))
		}
	}
}

func printListTable(out io.Writer, page catalog.Page[models.Application]) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tCATEGORIES\tCAPABILITIES\tID")
	for _, app := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			truncate(app.DisplayName, 40),
			catalog.FormatLifecycle(app.LifecycleState),
			truncate(tagNames(app.Categories), 30),
			len(app.Capabilities),
			app.ID)
	}
	w.Flush()
}

func printListJSON(w io.Writer, page catalog.Page[models.Application]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

// printListCSV writes one row per application on the page
func printListCSV(out io.Writer, page catalog.Page[models.Application]) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "name", "status", "categories", "capabilities", "trending"}); err != nil {
		return err
	}
	for _, app := range page.Items {
		row := []string{
			app.ID,
			app.DisplayName,
			string(app.LifecycleState),
			tagNames(app.Categories),
			strings.Join(app.Capabilities, " "),
			fmt.Sprint(catalog.IsTrending(&app)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func tagNames(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.DisplayName != "" {
			names = append(names, t.DisplayName)
		} else {
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)

	f := listCmd.Flags()
	f.StringVarP(&listQuery, "query", "q", "", "search text")
	f.StringVar(&listTab, "tab", catalog.TabAll, "category tab (display name) or all")
	f.StringSliceVar(&listCategories, "category", nil, "category or deployment tag name (repeatable)")
	f.StringSliceVar(&listCapabilities, "capability", nil, "connector capability, e.g. SYNC (repeatable)")
	f.StringSliceVar(&listStatuses, "status", nil, "lifecycle state, e.g. ACTIVE (repeatable)")
	f.StringSliceVar(&listMidpointVersions, "midpoint-version", nil, "supported midPoint version (repeatable)")
	f.BoolVar(&listTrending, "trending", false, "only trending applications")
	f.StringVarP(&listSort, "sort", "s", "", "sort by: alphabetical, popularity, activity")
	f.IntVarP(&listPage, "page", "p", 1, "page number")
	f.IntVar(&listPageSize, "page-size", 0, "applications per page (default from config)")
	f.StringVar(&listFormat, "format", "default", "output format: default, table, json, csv")
	f.BoolVar(&listRefresh, "refresh", false, "ignore the cached catalog")
}
