package segments

import (
	"context"
	"math"
	"sort"

	"github.com/dpup/prefab/logging"

	"github.com/fleetglass/tripcore/geo"
)

// Splitter partitions an ordered position stream into movement segments
// and idle gaps. It is stateless apart from its configuration and safe
// for concurrent use.
type Splitter struct {
	cfg Config
}

// NewSplitter creates a Splitter. Zero-valued config fields fall back
// to the defaults.
func NewSplitter(cfg Config) *Splitter {
	return &Splitter{cfg: cfg.withDefaults()}
}

// Config returns the splitter's effective configuration.
func (s *Splitter) Config() Config {
	return s.cfg
}

// Split partitions one trip window's samples into raw segments. Input
// samples are assumed ordered but ordering is re-validated: samples are
// re-sorted stably and duplicate timestamps are deduplicated keeping
// the first. Malformed samples are silently filtered; zero usable
// samples yield an empty list, never an error.
func (s *Splitter) Split(ctx context.Context, samples []Sample) []RawSegment {
	clean := s.sanitize(ctx, samples)
	if len(clean) == 0 {
		return nil
	}

	var out []RawSegment

	// cur accumulates the segment in progress. pending holds idle
	// samples that are either folded back into cur (short idle) or
	// discarded when the idle run turns out to be a stop.
	cur := []Sample{clean[0]}
	var pending []Sample
	curMoved := false
	lastActive := clean[0].Time

	for i := 1; i < len(clean); i++ {
		prev := clean[i-1]
		next := clean[i]
		hop := s.hop(prev, next)

		if hop.speedKmh < s.cfg.MotionThresholdKmh {
			pending = append(pending, next)
			continue
		}

		// Movement resumed during the hop prev->next, so prev is the
		// departure point and the idle run ends at prev.
		idle := prev.Time.Sub(lastActive)
		switch {
		case idle >= s.cfg.StopThreshold && curMoved:
			out = append(out, RawSegment{Points: cur, IdleBeforeNext: idle})
			cur = []Sample{prev, next}
		case idle >= s.cfg.StopThreshold:
			// A leading idle run is not a segment of its own.
			cur = []Sample{prev, next}
		default:
			cur = append(cur, pending...)
			cur = append(cur, next)
		}
		curMoved = true
		pending = nil
		lastActive = next.Time
	}

	// A window with no movement at all is one stationary segment and
	// keeps every sample. Otherwise trailing idle points are the stop
	// tail and are dropped; the final segment's idle gap is unknowable
	// without a next segment and stays zero.
	if !curMoved {
		cur = append(cur, pending...)
	}
	out = append(out, RawSegment{Points: cur})

	return out
}

// sanitize drops malformed samples, restores timestamp ordering and
// deduplicates equal timestamps (keep first). The caller's slice is
// never mutated.
func (s *Splitter) sanitize(ctx context.Context, samples []Sample) []Sample {
	clean := make([]Sample, 0, len(samples))
	for _, sm := range samples {
		if sm.Time.IsZero() || !geo.Valid(sm.Point()) {
			continue
		}
		clean = append(clean, sm)
	}

	sort.SliceStable(clean, func(i, j int) bool {
		return clean[i].Time.Before(clean[j].Time)
	})

	deduped := clean[:0]
	for i, sm := range clean {
		if i > 0 && sm.Time.Equal(clean[i-1].Time) {
			continue
		}
		deduped = append(deduped, sm)
	}

	if dropped := len(samples) - len(deduped); dropped > 0 {
		logging.Debugw(ctx, "filtered malformed or duplicate position samples",
			"dropped", dropped, "kept", len(deduped))
	}
	return deduped
}

type hopMetrics struct {
	distanceKm float64
	speedKmh   float64
}

// hop computes the distance and instantaneous speed of a single hop,
// applying the GPS-jitter floor. A hop whose distance computation is
// non-finite is treated like a missing sample and contributes nothing.
func (s *Splitter) hop(a, b Sample) hopMetrics {
	dt := b.Time.Sub(a.Time)
	if dt <= 0 {
		return hopMetrics{}
	}

	d := geo.DistanceKm(a.Point(), b.Point())
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return hopMetrics{}
	}

	speed := geo.SpeedKmh(d, dt.Hours())
	if d*1000 < s.cfg.JitterFloorMeters && s.nearStandstill(b, speed) {
		// Standstill jitter: short hop while the device says the
		// vehicle is not moving.
		return hopMetrics{}
	}
	return hopMetrics{distanceKm: d, speedKmh: speed}
}

// nearStandstill reports whether the device considers itself stopped.
// Without a reported speed the computed hop speed stands in.
func (s *Splitter) nearStandstill(b Sample, computedKmh float64) bool {
	if b.ReportedSpeedKmh != nil {
		return *b.ReportedSpeedKmh < s.cfg.JitterSpeedCeilingKmh
	}
	return computedKmh < s.cfg.MotionThresholdKmh
}
