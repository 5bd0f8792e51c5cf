// Package trips rolls movement segments into trip-level totals. The
// summary is derived data: it is always recomputed from segments and is
// never independently mutable.
package trips

import (
	"github.com/fleetglass/tripcore/geo"
	"github.com/fleetglass/tripcore/segments"
)

// Summary holds trip-level kinematics. TotalDurationMin counts moving
// time only; idle time between segments is reported separately, since
// trip duration here measures driving time.
type Summary struct {
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalDurationMin float64 `json:"total_duration_min"`
	AvgSpeedKmh      float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh      float64 `json:"max_speed_kmh"`
	P85SpeedKmh      float64 `json:"p85_speed_kmh"`
	StopCount        int     `json:"stop_count"`
	LongestIdleMin   float64 `json:"longest_idle_min"`
	TotalIdleMin     float64 `json:"total_idle_min"`
}

// Report bundles a trip's segments with their aggregate summary. It is
// the unit a caller renders, persists, or caches.
type Report struct {
	Segments []segments.Segment `json:"segments"`
	Summary  Summary            `json:"summary"`
}

// Aggregate folds summarized segments into one trip summary. A segment
// counts as a stop when its idle gap reaches stopThresholdMin minutes.
// Empty input yields a zero-valued summary, never an error; callers
// needing to distinguish "no data" from "zero movement" must check
// input size themselves.
func Aggregate(segs []segments.Segment, stopThresholdMin float64) Summary {
	var sum Summary
	for _, seg := range segs {
		sum.TotalDistanceKm += seg.DistanceKm
		sum.TotalDurationMin += seg.DurationMin
		sum.TotalIdleMin += seg.IdleMinutesBeforeNext
		if seg.MaxSpeedKmh > sum.MaxSpeedKmh {
			sum.MaxSpeedKmh = seg.MaxSpeedKmh
		}
		if seg.P85SpeedKmh > sum.P85SpeedKmh {
			sum.P85SpeedKmh = seg.P85SpeedKmh
		}
		if seg.IdleMinutesBeforeNext >= stopThresholdMin && stopThresholdMin > 0 {
			sum.StopCount++
		}
		if seg.IdleMinutesBeforeNext > sum.LongestIdleMin {
			sum.LongestIdleMin = seg.IdleMinutesBeforeNext
		}
	}
	sum.AvgSpeedKmh = geo.SpeedKmh(sum.TotalDistanceKm, sum.TotalDurationMin/60)
	return sum
}

// BuildReport pairs segments with their aggregate summary.
func BuildReport(segs []segments.Segment, stopThresholdMin float64) Report {
	return Report{
		Segments: segs,
		Summary:  Aggregate(segs, stopThresholdMin),
	}
}
