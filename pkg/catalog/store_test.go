package catalog

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huanfeng/connhub-cli/internal/testutil"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

func TestStore_SetNotifiesSubscribers(t *testing.T) {
	s := NewStore()
	var got [][]models.Application
	unsubscribe := s.Subscribe(func(r []models.Application) { got = append(got, r) })

	first := []models.Application{testutil.NewApplication("A")}
	s.Set(first)
	assert.Equal(t, first, s.Get())
	assert.Len(t, got, 1)

	unsubscribe()
	s.Set(nil)
	assert.Len(t, got, 1)
	assert.Nil(t, s.Get())
	assert.Equal(t, uint64(2), s.Version())
}

func TestStore_CommitDropsStaleLoads(t *testing.T) {
	s := NewStore()
	older := s.Begin()
	newer := s.Begin()

	fresh := []models.Application{testutil.NewApplication("fresh")}
	stale := []models.Application{testutil.NewApplication("stale")}

	assert.True(t, s.Commit(newer, fresh))
	assert.False(t, s.Commit(older, stale))
	assert.Equal(t, "fresh", s.Get()[0].DisplayName)
}

func TestStore_ConcurrentLoadsKeepNewest(t *testing.T) {
	s := NewStore()
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		newest LoadToken
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := s.Begin()
			mu.Lock()
			newest = max(newest, token)
			mu.Unlock()
			name := strconv.FormatUint(uint64(token), 10)
			s.Commit(token, []models.Application{testutil.NewApplication(name)})
		}()
	}
	wg.Wait()

	got := s.Get()
	if assert.Len(t, got, 1) {
		assert.Equal(t, strconv.FormatUint(uint64(newest), 10), got[0].DisplayName)
	}
}
