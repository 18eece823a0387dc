package client

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewCacheManager(t.TempDir(), time.Hour)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set("k", []string{"a", "b"}, 0))

	var got []string
	found, err := c.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	now = now.Add(2 * time.Hour)
	found, err = c.Get("k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, stale, err := c.GetAllowStale("k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, stale)

	removed, err := c.CleanExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestCacheMissing(t *testing.T) {
	c := NewCacheManager(t.TempDir(), time.Hour)
	apps, stale, err := c.GetApplications(true)
	require.NoError(t, err)
	assert.Nil(t, apps)
	assert.False(t, stale)
}

func TestCacheStatsAndClear(t *testing.T) {
	c := NewCacheManager(t.TempDir(), time.Hour)
	require.NoError(t, c.SetApplications([]models.Application{{ID: "1", DisplayName: "One"}}))
	require.NoError(t, c.Set(KeyCountries, []models.Country{{Name: "Austria", Code: "AT"}}, 0))

	stats, err := c.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Positive(t, stats.TotalSize)

	var buf bytes.Buffer
	require.NoError(t, c.WriteStats(&buf))
	assert.Contains(t, buf.String(), "Total entries: 2")

	removed, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	stats, err = c.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEntries)
}
