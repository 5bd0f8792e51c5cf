// Package tripcore turns raw streams of GPS position fixes into driving
// structure: movement segments separated by stops, per-segment and
// per-trip kinematics, and continuity checks across consecutive trips
// that surface suspected gaps in tracking coverage.
//
// The core is a pure computation over already-fetched data. It performs
// no I/O, keeps no state between calls, and always terminates; callers
// own fetching, persistence, rendering and scheduling.
package tripcore

import (
	"context"

	"github.com/fleetglass/tripcore/config"
	"github.com/fleetglass/tripcore/continuity"
	"github.com/fleetglass/tripcore/segments"
	"github.com/fleetglass/tripcore/trips"
)

// Analyzer ties the segmentation pipeline and the continuity validator
// together under one configuration. It holds no mutable state and is
// safe to share across goroutines; independent trips and devices may be
// analyzed in parallel with no coordination.
type Analyzer struct {
	splitter  *segments.Splitter
	validator *continuity.Validator
}

// New creates an Analyzer. Zero-valued config fields fall back to the
// documented defaults, so New(config.Config{}) is usable as-is.
func New(cfg config.Config) *Analyzer {
	return &Analyzer{
		splitter:  segments.NewSplitter(cfg.Segmentation),
		validator: continuity.NewValidator(cfg.Continuity),
	}
}

// AnalyzeTrip computes the full report for one trip window: samples are
// split into movement segments, each segment is annotated with metrics,
// and the segments are folded into trip totals. Malformed samples are
// silently filtered; empty input yields a zero-valued report rather
// than an error, so callers that must distinguish "no data" from "zero
// movement" check input size before calling.
func (a *Analyzer) AnalyzeTrip(ctx context.Context, samples []segments.Sample) trips.Report {
	segs := a.splitter.Summarize(ctx, samples)
	return trips.BuildReport(segs, a.splitter.Config().StopThreshold.Minutes())
}

// ValidateContinuity compares each adjacent pair among a device's trips
// and returns the suspected coverage gaps. Never fails; any input shape
// yields at worst an empty list.
func (a *Analyzer) ValidateContinuity(ctx context.Context, tripList []continuity.Trip) []continuity.Issue {
	return a.validator.Validate(ctx, tripList)
}
