package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/i18n"
)

var skipConfirm bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local catalog cache",
	Long:  `Show, clean or clear the cached catalog and country list.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newCache().WriteStats(os.Stdout)
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove expired cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := newCache()
		removed, err := cache.CleanExpired()
		if err != nil {
			return apperrors.WrapError(err, apperrors.ErrorTypeFileSystem, apperrors.CodeCacheFailed,
				i18n.T("cache.cleanFailed"))
		}

		if removed > 0 {
			fmt.Println(i18n.T("cache.removed", map[string]interface{}{"Count": removed}))
		} else {
			fmt.Println(i18n.T("cache.nothingExpired"))
		}
		fmt.Println()
		return cache.WriteStats(os.Stdout)
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cache entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := newCache()
		if !skipConfirm {
			fmt.Print(i18n.T("cache.clearConfirm", map[string]interface{}{"Dir": cache.Dir()}))
			var response string
			fmt.Scanln(&response)
			if !strings.EqualFold(response, "y") && !strings.EqualFold(response, "yes") {
				fmt.Println(i18n.T("cache.clearCancelled"))
				return nil
			}
		}

		removed, err := cache.Clear()
		if err != nil {
			return apperrors.WrapError(err, apperrors.ErrorTypeFileSystem, apperrors.CodeCacheFailed,
				i18n.T("cache.clearFailed"))
		}
		fmt.Println(i18n.T("cache.removed", map[string]interface{}{"Count": removed}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheCleanCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "do not ask for confirmation")
}
