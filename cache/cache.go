// Package cache provides a caller-side store for computed trip reports.
// The analysis core is pure and recomputation is cheap, so caching is a
// caller concern: this is the simple trip-id keyed map with explicit
// invalidation that callers are expected to layer on top.
package cache

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dpup/prefab/errors"
	"github.com/dpup/prefab/logging"

	"github.com/fleetglass/tripcore/trips"
)

// ReportCache is a thread-safe map of trip id to computed report.
// Entries never change behind the caller's back; they are replaced by
// Set or removed by Invalidate. A non-zero maxAge additionally lets
// callers that refresh source data on a timer treat old entries as
// stale.
type ReportCache struct {
	maxAge  time.Duration
	entries map[string]*entry
	mutex   sync.RWMutex
}

type entry struct {
	report    trips.Report
	createdAt time.Time
}

// NewReportCache creates a report cache. maxAge of 0 disables
// staleness entirely; entries then live until explicitly invalidated.
func NewReportCache(maxAge time.Duration) *ReportCache {
	return &ReportCache{
		maxAge:  maxAge,
		entries: make(map[string]*entry),
	}
}

// Set stores a report for a trip, replacing any previous entry.
func (c *ReportCache) Set(tripID string, report trips.Report) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[tripID] = &entry{report: report, createdAt: time.Now()}
}

// Get retrieves a fresh report for a trip.
func (c *ReportCache) Get(tripID string) (trips.Report, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.entries[tripID]
	if !ok || c.stale(e) {
		return trips.Report{}, false
	}
	return e.report, true
}

// Invalidate removes a trip's entry. Callers invalidate explicitly when
// the underlying position data changes.
func (c *ReportCache) Invalidate(tripID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, tripID)
}

// Clear removes all entries.
func (c *ReportCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*entry)
}

// Keys returns the trip ids currently cached, fresh or stale.
func (c *ReportCache) Keys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Stats returns cache usage statistics.
func (c *ReportCache) Stats() Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	stats := Stats{TotalEntries: len(c.entries)}
	for _, e := range c.entries {
		if c.stale(e) {
			stats.StaleEntries++
		} else {
			stats.FreshEntries++
		}
		if stats.OldestEntry.IsZero() || e.createdAt.Before(stats.OldestEntry) {
			stats.OldestEntry = e.createdAt
		}
		if e.createdAt.After(stats.NewestEntry) {
			stats.NewestEntry = e.createdAt
		}
	}
	return stats
}

// CleanupStale removes all stale entries and reports how many were
// removed. A no-op when staleness is disabled.
func (c *ReportCache) CleanupStale() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var removed int
	for key, e := range c.entries {
		if c.stale(e) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// StartPeriodicCleanup starts a goroutine that removes stale entries on
// the given interval until ctx is cancelled.
func (c *ReportCache) StartPeriodicCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				err, _ := errors.ParseStack(debug.Stack())
				skipFrames := 3
				numFrames := 5
				logging.Errorw(ctx, "Report cache cleanup: recovered from panic",
					"error", r, "error.stack_trace", err.MinimalStack(skipFrames, numFrames))
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.CleanupStale(); removed > 0 {
					logging.Debugw(ctx, "removed stale trip reports", "removed", removed)
				}
			}
		}
	}()
}

// stale reports whether an entry has outlived maxAge. Callers must hold
// at least a read lock.
func (c *ReportCache) stale(e *entry) bool {
	if c.maxAge <= 0 {
		return false
	}
	return time.Since(e.createdAt) > c.maxAge
}

// Stats provides cache usage statistics.
type Stats struct {
	TotalEntries int
	FreshEntries int
	StaleEntries int
	OldestEntry  time.Time
	NewestEntry  time.Time
}
