package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/internal/testutil"
	"github.com/huanfeng/connhub-cli/pkg/catalog"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

type stubSource struct {
	apps  []models.Application
	err   error
	calls int
}

func (s *stubSource) ListApplications(context.Context) ([]models.Application, error) {
	s.calls++
	return s.apps, s.err
}

func TestLoaderNetwork(t *testing.T) {
	src := &stubSource{apps: []models.Application{testutil.NewApplication("A")}}
	cache := NewCacheManager(t.TempDir(), time.Hour)
	store := catalog.NewStore()

	res := NewLoader(src, cache, store, testutil.Logger()).Load(context.Background(), false)
	assert.Equal(t, SourceNetwork, res.Source)
	assert.True(t, res.Committed)
	assert.NoError(t, res.Warning)
	assert.Len(t, store.Get(), 1)

	cached, _, err := cache.GetApplications(false)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestLoaderPrefersFreshCache(t *testing.T) {
	src := &stubSource{}
	cache := NewCacheManager(t.TempDir(), time.Hour)
	require.NoError(t, cache.SetApplications([]models.Application{testutil.NewApplication("Cached")}))
	store := catalog.NewStore()

	res := NewLoader(src, cache, store, nil).Load(context.Background(), false)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, 0, src.calls)
	assert.Equal(t, "Cached", store.Get()[0].DisplayName)

	res = NewLoader(src, cache, store, nil).Load(context.Background(), true)
	assert.Equal(t, SourceNetwork, res.Source)
	assert.Equal(t, 1, src.calls)
}

func TestLoaderFallsBackToStaleCache(t *testing.T) {
	cache := NewCacheManager(t.TempDir(), time.Hour)
	require.NoError(t, cache.SetApplications([]models.Application{testutil.NewApplication("Old")}))
	cache.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	src := &stubSource{err: apperrors.NewNetworkError(apperrors.CodeRequestFailed, "down")}
	store := catalog.NewStore()

	res := NewLoader(src, cache, store, nil).Load(context.Background(), false)
	assert.Equal(t, SourceStaleCache, res.Source)
	require.Error(t, res.Warning)
	assert.True(t, apperrors.HasCode(res.Warning, apperrors.CodeLoadFailed))
	assert.Equal(t, "Old", store.Get()[0].DisplayName)
}

func TestLoaderKeepsPreviousDataset(t *testing.T) {
	store := catalog.NewStore()
	store.Set([]models.Application{testutil.NewApplication("Kept")})
	src := &stubSource{err: errors.New("boom")}

	res := NewLoader(src, nil, store, nil).Load(context.Background(), true)
	assert.Equal(t, SourcePrevious, res.Source)
	assert.False(t, res.Committed)
	assert.Error(t, res.Warning)
	assert.Equal(t, "Kept", store.Get()[0].DisplayName)
}

func TestLoaderEmptyOnFirstFailure(t *testing.T) {
	store := catalog.NewStore()
	src := &stubSource{err: errors.New("boom")}

	res := NewLoader(src, nil, store, nil).Load(context.Background(), true)
	assert.Equal(t, SourceNone, res.Source)
	assert.Error(t, res.Warning)
	assert.NotNil(t, store.Get())
	assert.Empty(t, store.Get())
}

type blockingSource struct {
	started chan struct{}
	release chan struct{}
	apps    []models.Application
}

func (b *blockingSource) ListApplications(ctx context.Context) ([]models.Application, error) {
	close(b.started)
	<-b.release
	return b.apps, nil
}

func TestLoaderDropsSupersededLoad(t *testing.T) {
	store := catalog.NewStore()
	slow := &blockingSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
		apps:    []models.Application{testutil.NewApplication("Stale")},
	}

	done := make(chan LoadResult)
	go func() { done <- NewLoader(slow, nil, store, nil).Load(context.Background(), true) }()

	<-slow.started

	fast := &stubSource{apps: []models.Application{testutil.NewApplication("Fresh")}}
	res := NewLoader(fast, nil, store, nil).Load(context.Background(), true)
	assert.True(t, res.Committed)

	close(slow.release)
	slowRes := <-done
	assert.False(t, slowRes.Committed)
	assert.Equal(t, "Fresh", store.Get()[0].DisplayName)
}
