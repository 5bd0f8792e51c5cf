// Package continuity compares consecutive trips for a device and flags
// suspected gaps in GPS tracking coverage.
package continuity

import (
	"time"

	"github.com/fleetglass/tripcore/geo"
)

// Severity classifies how suspicious a gap between two trips is.
type Severity string

const (
	// SeverityWarning marks a moderate gap: plausibly a real but
	// unlogged stop.
	SeverityWarning Severity = "warning"
	// SeverityError marks a large distance gap over a short time:
	// movement implied without a recorded trip, i.e. a suspected
	// tracking dropout.
	SeverityError Severity = "error"
)

// Trip is a trip record as supplied by the caller's backend. Endpoint
// coordinates and timestamps are nullable; EncodedPath optionally
// carries the trip's stored route polyline, whose first and last
// vertices stand in for missing endpoint coordinates.
type Trip struct {
	ID          string     `json:"id"`
	Start       *geo.Point `json:"start,omitempty"`
	End         *geo.Point `json:"end,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	EncodedPath string     `json:"encoded_path,omitempty"`
}

// Issue flags a suspected data gap between two consecutive trips. It is
// attributed to the next trip, since it represents a discontinuity
// detected before that trip.
type Issue struct {
	TripID         string   `json:"trip_id"`
	DistanceGapKm  float64  `json:"distance_gap_km"`
	TimeGapMinutes float64  `json:"time_gap_minutes"`
	Severity       Severity `json:"severity"`
}

// Config holds the continuity classification thresholds.
type Config struct {
	// MinGapKm is the distance below which adjacent trips are
	// considered continuous and no issue is emitted.
	MinGapKm float64 `yaml:"min_gap_km"`

	// ErrorGapKm is the distance at or above which a gap is an error
	// when it appears within ErrorTimeGapMinutes.
	ErrorGapKm float64 `yaml:"error_gap_km"`

	// ErrorTimeGapMinutes bounds how quickly a large distance gap must
	// appear to imply unrecorded movement rather than an unlogged stop.
	ErrorTimeGapMinutes float64 `yaml:"error_time_gap_minutes"`
}

// DefaultConfig returns the default continuity thresholds.
func DefaultConfig() Config {
	return Config{
		MinGapKm:            1.0,
		ErrorGapKm:          5.0,
		ErrorTimeGapMinutes: 15.0,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinGapKm <= 0 {
		c.MinGapKm = def.MinGapKm
	}
	if c.ErrorGapKm <= 0 {
		c.ErrorGapKm = def.ErrorGapKm
	}
	if c.ErrorTimeGapMinutes <= 0 {
		c.ErrorTimeGapMinutes = def.ErrorTimeGapMinutes
	}
	return c
}
