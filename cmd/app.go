package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/huanfeng/connhub-cli/internal/i18n"
	"github.com/huanfeng/connhub-cli/pkg/catalog"
	"github.com/huanfeng/connhub-cli/pkg/client"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

// commandContext is cancelled on Ctrl-C
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func newAPIClient() *client.APIClient {
	return client.NewAPIClientFromConfig(cfg, utils.GetGlobalLogger().WithField("component", "api"))
}

func newCache() *client.CacheManager {
	return client.NewCacheManager(cfg.Cache.Dir, cfg.Cache.TTL)
}

func newCountryService() *client.CountryService {
	return client.NewCountryService(cfg.Countries.URL, nil, newCache(), utils.GetGlobalLogger())
}

// loadCatalog fills a new store. A backend failure is printed as a
// warning and whatever dataset could be recovered is returned.
func loadCatalog(ctx context.Context, refresh bool) (*catalog.Store, client.LoadResult) {
	store := catalog.NewStore()
	loader := client.NewLoader(newAPIClient(), newCache(), store, utils.GetGlobalLogger())
	res := loader.Load(ctx, refresh)
	if res.Warning != nil {
		fmt.Fprintln(os.Stderr, i18n.T("catalog.loadWarning", map[string]interface{}{
			"Error":  res.Warning.Error(),
			"Source": string(res.Source),
		}))
	}
	utils.Debug("catalog loaded from %s: %d records", res.Source, res.Count)
	return store, res
}
