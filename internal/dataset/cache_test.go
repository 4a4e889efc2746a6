package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumardhruv88/result-analytics/internal/types"
)

func TestCacheExpiryWithInjectedClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := NewCache(time.Hour)
	c.SetClock(clock)

	ds := FromRecords([]types.StudentRecord{{RollNumber: "R1"}})
	modTime := now.Add(-time.Minute)
	c.Put("results.csv", modTime, ds)

	got, ok := c.Get("results.csv", modTime)
	require.True(t, ok)
	assert.Same(t, ds, got)

	// Just inside the TTL.
	now = now.Add(59 * time.Minute)
	_, ok = c.Get("results.csv", modTime)
	assert.True(t, ok)

	// Past the TTL.
	now = now.Add(2 * time.Minute)
	_, ok = c.Get("results.csv", modTime)
	assert.False(t, ok)
}

func TestCacheMissOnModTimeChange(t *testing.T) {
	c := NewCache(time.Hour)
	ds := FromRecords(nil)
	modTime := time.Now()
	c.Put("results.csv", modTime, ds)

	_, ok := c.Get("results.csv", modTime.Add(time.Second))
	assert.False(t, ok)

	// The stale entry was dropped, so even the original mod time
	// misses now.
	_, ok = c.Get("results.csv", modTime)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(time.Hour)
	ds := FromRecords(nil)
	modTime := time.Now()

	c.Put("a.csv", modTime, ds)
	c.Put("b.csv", modTime, ds)

	c.Invalidate("a.csv")
	_, ok := c.Get("a.csv", modTime)
	assert.False(t, ok)
	_, ok = c.Get("b.csv", modTime)
	assert.True(t, ok)

	c.InvalidateAll()
	_, ok = c.Get("b.csv", modTime)
	assert.False(t, ok)
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(0)
	c.SetClock(func() time.Time { return now })

	ds := FromRecords(nil)
	modTime := now
	c.Put("results.csv", modTime, ds)

	now = now.Add(1000 * time.Hour)
	_, ok := c.Get("results.csv", modTime)
	assert.True(t, ok)
}
