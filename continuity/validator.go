package continuity

import (
	"context"
	"math"
	"sort"

	"github.com/dpup/prefab/logging"

	"github.com/fleetglass/tripcore/geo"
)

// Validator folds an ordered list of trips into a list of continuity
// issues. Stateless apart from its configuration; safe for concurrent
// use. It never fails: the worst case for any input shape is an empty
// issue list.
type Validator struct {
	cfg Config
}

// NewValidator creates a Validator. Zero-valued config fields fall back
// to the defaults.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg.withDefaults()}
}

// Config returns the validator's effective configuration.
func (v *Validator) Config() Config {
	return v.cfg
}

// pairableTrip is a trip with both endpoints resolved.
type pairableTrip struct {
	trip  Trip
	start geo.Point
	end   geo.Point
}

// Validate compares each adjacent trip pair and flags suspected data
// gaps. Trips missing a usable endpoint are excluded from pairing
// without invalidating their neighbors. Input is expected sorted
// ascending by start time but is re-sorted defensively.
func (v *Validator) Validate(ctx context.Context, trips []Trip) []Issue {
	paired := make([]pairableTrip, 0, len(trips))
	for _, t := range trips {
		p, ok := resolveEndpoints(t)
		if !ok {
			continue
		}
		paired = append(paired, p)
	}

	if skipped := len(trips) - len(paired); skipped > 0 {
		logging.Debugw(ctx, "excluded trips with unresolvable endpoints from continuity pairing",
			"skipped", skipped, "paired", len(paired))
	}

	sort.SliceStable(paired, func(i, j int) bool {
		return paired[i].trip.StartTime.Before(*paired[j].trip.StartTime)
	})

	var issues []Issue
	for i := 1; i < len(paired); i++ {
		prev, next := paired[i-1], paired[i]

		timeGap := next.trip.StartTime.Sub(*prev.trip.EndTime).Minutes()
		if timeGap < 0 {
			// Overlapping trips are malformed input, not a coverage gap.
			continue
		}

		distanceGap := geo.DistanceKm(prev.end, next.start)
		if math.IsNaN(distanceGap) || distanceGap < v.cfg.MinGapKm {
			continue
		}

		severity := SeverityWarning
		if distanceGap >= v.cfg.ErrorGapKm && timeGap <= v.cfg.ErrorTimeGapMinutes {
			// The vehicle covered a large distance with no trip
			// recorded in between.
			severity = SeverityError
		}

		issues = append(issues, Issue{
			TripID:         next.trip.ID,
			DistanceGapKm:  distanceGap,
			TimeGapMinutes: timeGap,
			Severity:       severity,
		})
	}
	return issues
}

// resolveEndpoints determines a trip's start and end coordinates.
// Explicit coordinates win; otherwise the stored route polyline's first
// and last vertices stand in. Timestamps must be explicit. Trips with
// invalid coordinates are unusable, same as missing ones.
func resolveEndpoints(t Trip) (pairableTrip, bool) {
	if t.StartTime == nil || t.EndTime == nil {
		return pairableTrip{}, false
	}

	start, end := t.Start, t.End
	if (start == nil || end == nil) && t.EncodedPath != "" {
		if path, err := geo.DecodePolyline(t.EncodedPath); err == nil && len(path) > 0 {
			if start == nil {
				start = &path[0]
			}
			if end == nil {
				end = &path[len(path)-1]
			}
		}
	}
	if start == nil || end == nil || !geo.Valid(*start) || !geo.Valid(*end) {
		return pairableTrip{}, false
	}

	return pairableTrip{trip: t, start: *start, end: *end}, true
}
