// Package playback resolves a position along summarized segments for a
// given instant, for callers driving a trip playback UI.
package playback

import (
	"time"

	"github.com/fleetglass/tripcore/geo"
	"github.com/fleetglass/tripcore/segments"
)

// PositionAt returns the interpolated position at time t along the
// given segments. Times before the first known fix clamp to the first
// point and times after the last fix clamp to the last point; during a
// stop between segments the vehicle sits at the previous segment's last
// point. The boolean is false only when the segments contain no points.
func PositionAt(segs []segments.Segment, t time.Time) (geo.Point, bool) {
	var last *segments.Sample
	for si := range segs {
		points := segs[si].Points
		for pi := range points {
			p := &points[pi]
			if !t.Before(p.Time) {
				last = p
				continue
			}

			// t falls before this fix. Interpolate within the hop when
			// there is a previous fix in the same segment; otherwise we
			// are before the first fix or inside an inter-segment stop.
			if last == nil {
				return p.Point(), true
			}
			if pi == 0 {
				return last.Point(), true
			}
			span := p.Time.Sub(last.Time)
			if span <= 0 {
				return p.Point(), true
			}
			frac := float64(t.Sub(last.Time)) / float64(span)
			return geo.Interpolate(last.Point(), p.Point(), frac), true
		}
	}

	if last == nil {
		return geo.Point{}, false
	}
	return last.Point(), true
}
