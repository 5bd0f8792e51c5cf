// Package segments partitions an ordered GPS position stream into
// movement segments separated by stops, and annotates each segment with
// distance, duration and speed metrics.
package segments

import (
	"time"

	"github.com/fleetglass/tripcore/geo"
)

// Sample represents a single GPS position fix within one trip window.
// ReportedSpeedKmh is the device-reported speed and may be absent;
// everything else is required. Samples with missing or out-of-range
// coordinates are filtered at the boundary, never surfaced as errors.
type Sample struct {
	Latitude         float64   `json:"lat"`
	Longitude        float64   `json:"lng"`
	Time             time.Time `json:"time"`
	ReportedSpeedKmh *float64  `json:"reported_speed_kmh,omitempty"`
}

// Point returns the sample's coordinate.
func (s Sample) Point() geo.Point {
	return geo.Point{Latitude: s.Latitude, Longitude: s.Longitude}
}

// RawSegment is a point group produced by the splitter before metrics
// are computed. IdleBeforeNext is the idle gap separating this segment
// from the next one; it is zero for the final segment of a window.
type RawSegment struct {
	Points         []Sample
	IdleBeforeNext time.Duration
}

// Segment is a contiguous stretch of movement between two stops, with
// per-segment kinematics attached. Plain and serializable; carries no
// identity tied to any storage or UI technology.
type Segment struct {
	Points                []Sample  `json:"points"`
	StartTime             time.Time `json:"start_time"`
	EndTime               time.Time `json:"end_time"`
	DistanceKm            float64   `json:"distance_km"`
	DurationMin           float64   `json:"duration_min"`
	AvgSpeedKmh           float64   `json:"avg_speed_kmh"`
	MaxSpeedKmh           float64   `json:"max_speed_kmh"`
	P85SpeedKmh           float64   `json:"p85_speed_kmh"`
	IdleMinutesBeforeNext float64   `json:"idle_minutes_before_next"`
}

// Config holds the segmentation thresholds. The defaults were chosen
// for road vehicles reporting fixes every few seconds to a few minutes;
// deployments with very different samplers should tune them against
// real traces.
type Config struct {
	// MotionThresholdKmh separates idle samples from moving ones.
	// Samples at or above it are moving.
	MotionThresholdKmh float64 `yaml:"motion_threshold_kmh"`

	// StopThreshold is the minimum idle duration that ends a segment.
	// Shorter idle periods (a red light) are folded into the segment.
	StopThreshold time.Duration `yaml:"stop_threshold"`

	// JitterFloorMeters is the hop length below which standstill GPS
	// jitter is discarded rather than counted as distance.
	JitterFloorMeters float64 `yaml:"jitter_floor_meters"`

	// JitterSpeedCeilingKmh bounds what "near zero" device-reported
	// speed means for the jitter floor.
	JitterSpeedCeilingKmh float64 `yaml:"jitter_speed_ceiling_kmh"`
}

// DefaultConfig returns the default segmentation thresholds.
func DefaultConfig() Config {
	return Config{
		MotionThresholdKmh:    2.0,
		StopThreshold:         3 * time.Minute,
		JitterFloorMeters:     15.0,
		JitterSpeedCeilingKmh: 1.0,
	}
}

// withDefaults fills zero-valued fields so a partially populated config
// behaves sensibly.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MotionThresholdKmh <= 0 {
		c.MotionThresholdKmh = def.MotionThresholdKmh
	}
	if c.StopThreshold <= 0 {
		c.StopThreshold = def.StopThreshold
	}
	if c.JitterFloorMeters <= 0 {
		c.JitterFloorMeters = def.JitterFloorMeters
	}
	if c.JitterSpeedCeilingKmh <= 0 {
		c.JitterSpeedCeilingKmh = def.JitterSpeedCeilingKmh
	}
	return c
}
