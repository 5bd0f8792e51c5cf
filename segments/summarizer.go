package segments

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fleetglass/tripcore/geo"
)

// Summarize splits one trip window's samples and annotates each raw
// segment with distance, duration and speed metrics. Calling it twice
// on identical input yields identical output.
func (s *Splitter) Summarize(ctx context.Context, samples []Sample) []Segment {
	raws := s.Split(ctx, samples)
	if len(raws) == 0 {
		return nil
	}

	segs := make([]Segment, 0, len(raws))
	for _, raw := range raws {
		segs = append(segs, s.summarize(raw))
	}
	return segs
}

// summarize computes per-segment metrics from a raw point group.
// Distance is the sum of per-hop great-circle distances after the
// jitter floor. Average speed is distance over the segment's span, not
// a mean of instantaneous point speeds, which would be biased by
// uneven sampling intervals.
func (s *Splitter) summarize(raw RawSegment) Segment {
	seg := Segment{
		Points:                raw.Points,
		IdleMinutesBeforeNext: raw.IdleBeforeNext.Minutes(),
	}
	if len(raw.Points) == 0 {
		return seg
	}

	seg.StartTime = raw.Points[0].Time
	seg.EndTime = raw.Points[len(raw.Points)-1].Time
	span := seg.EndTime.Sub(seg.StartTime)
	seg.DurationMin = span.Minutes()

	var hopSpeeds []float64
	for i := 1; i < len(raw.Points); i++ {
		hop := s.hop(raw.Points[i-1], raw.Points[i])
		seg.DistanceKm += hop.distanceKm
		if hop.speedKmh > seg.MaxSpeedKmh {
			seg.MaxSpeedKmh = hop.speedKmh
		}
		hopSpeeds = append(hopSpeeds, hop.speedKmh)
	}

	seg.AvgSpeedKmh = geo.SpeedKmh(seg.DistanceKm, span.Hours())
	seg.P85SpeedKmh = quantileSpeed(0.85, hopSpeeds)
	return seg
}

// quantileSpeed computes the empirical q-quantile of per-hop speeds.
// Zero hops means a zero-length segment; its quantile is 0.
func quantileSpeed(q float64, speeds []float64) float64 {
	if len(speeds) == 0 {
		return 0
	}
	sorted := append([]float64(nil), speeds...)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}
