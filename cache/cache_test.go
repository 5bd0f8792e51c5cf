package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetglass/tripcore/trips"
)

func report(distanceKm float64) trips.Report {
	return trips.Report{Summary: trips.Summary{TotalDistanceKm: distanceKm}}
}

func TestReportCache_SetGet(t *testing.T) {
	c := NewReportCache(0)

	c.Set("trip-1", report(12.5))

	got, ok := c.Get("trip-1")
	require.True(t, ok)
	assert.Equal(t, 12.5, got.Summary.TotalDistanceKm)

	_, ok = c.Get("trip-2")
	assert.False(t, ok)
}

func TestReportCache_SetReplaces(t *testing.T) {
	c := NewReportCache(0)

	c.Set("trip-1", report(12.5))
	c.Set("trip-1", report(20))

	got, ok := c.Get("trip-1")
	require.True(t, ok)
	assert.Equal(t, 20.0, got.Summary.TotalDistanceKm)
}

func TestReportCache_Invalidate(t *testing.T) {
	c := NewReportCache(0)

	c.Set("trip-1", report(12.5))
	c.Invalidate("trip-1")

	_, ok := c.Get("trip-1")
	assert.False(t, ok)

	// Invalidating an absent key is fine.
	c.Invalidate("trip-404")
}

func TestReportCache_Clear(t *testing.T) {
	c := NewReportCache(0)

	c.Set("trip-1", report(1))
	c.Set("trip-2", report(2))
	c.Clear()

	assert.Empty(t, c.Keys())
}

func TestReportCache_Staleness(t *testing.T) {
	c := NewReportCache(10 * time.Millisecond)

	c.Set("trip-1", report(1))

	_, ok := c.Get("trip-1")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get("trip-1")
	assert.False(t, ok, "entries past maxAge are not served")

	removed := c.CleanupStale()
	assert.Equal(t, 1, removed)
	assert.Empty(t, c.Keys())
}

func TestReportCache_ZeroMaxAgeNeverStale(t *testing.T) {
	c := NewReportCache(0)

	c.Set("trip-1", report(1))
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("trip-1")
	assert.True(t, ok)
	assert.Zero(t, c.CleanupStale())
}

func TestReportCache_Stats(t *testing.T) {
	c := NewReportCache(time.Hour)

	c.Set("trip-1", report(1))
	c.Set("trip-2", report(2))

	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 2, stats.FreshEntries)
	assert.Zero(t, stats.StaleEntries)
	assert.False(t, stats.OldestEntry.IsZero())
	assert.False(t, stats.NewestEntry.Before(stats.OldestEntry))
}
