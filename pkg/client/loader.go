package client

import (
	"context"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/pkg/catalog"
	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/huanfeng/connhub-cli/pkg/utils"
)

// ApplicationSource fetches the catalog from the backend
type ApplicationSource interface {
	ListApplications(ctx context.Context) ([]models.Application, error)
}

// Source tells where a loaded dataset came from
type Source string

const (
	SourceNetwork    Source = "network"
	SourceCache      Source = "cache"
	SourceStaleCache Source = "stale-cache"
	SourcePrevious   Source = "previous"
	SourceNone       Source = "none"
)

// LoadResult describes a completed load. Warning is set when the backend
// failed and an older dataset is shown instead.
type LoadResult struct {
	Source    Source
	Count     int
	Committed bool
	Warning   error
}

// Loader fills a catalog store from the cache or the backend
type Loader struct {
	source ApplicationSource
	cache  *CacheManager
	store  *catalog.Store
	logger utils.Logger
}

// NewLoader creates a loader. cache may be nil.
func NewLoader(source ApplicationSource, cache *CacheManager, store *catalog.Store, logger utils.Logger) *Loader {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Loader{source: source, cache: cache, store: store, logger: logger}
}

// Load replaces the store's records. A fresh cache entry is used unless
// refresh is set. Backend failures never fail the load: the stale cache or
// the records already in the store are kept and reported through Warning.
func (l *Loader) Load(ctx context.Context, refresh bool) LoadResult {
	token := l.store.Begin()

	if !refresh && l.cache != nil {
		apps, _, err := l.cache.GetApplications(false)
		if err != nil {
			l.logger.Debug("reading catalog cache: %v", err)
		} else if apps != nil {
			return l.commit(token, apps, SourceCache, nil)
		}
	}

	apps, fetchErr := l.source.ListApplications(ctx)
	if fetchErr == nil {
		if l.cache != nil {
			if err := l.cache.SetApplications(apps); err != nil {
				l.logger.Warn("failed to cache catalog: %v", err)
			}
		}
		return l.commit(token, apps, SourceNetwork, nil)
	}

	l.logger.Warn("failed to load catalog: %v", fetchErr)
	warning := apperrors.WrapError(fetchErr, apperrors.ErrorTypeNetwork, apperrors.CodeLoadFailed, "failed to load applications").
		SetRetryable(true)

	if l.cache != nil {
		if stale, _, err := l.cache.GetApplications(true); err == nil && stale != nil {
			return l.commit(token, stale, SourceStaleCache, warning)
		}
	}

	previous := l.store.Get()
	if previous != nil {
		return LoadResult{Source: SourcePrevious, Count: len(previous), Warning: warning}
	}
	return l.commit(token, []models.Application{}, SourceNone, warning)
}

func (l *Loader) commit(token catalog.LoadToken, apps []models.Application, src Source, warning error) LoadResult {
	committed := l.store.Commit(token, apps)
	if !committed {
		l.logger.Debug("dropping superseded catalog load from %s", src)
	}
	return LoadResult{Source: src, Count: len(apps), Committed: committed, Warning: warning}
}
