package segments

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_TwoLegTripWithStop(t *testing.T) {
	s := NewSplitter(Config{})

	samples := []Sample{
		sampleAt(0, 0),
		sampleAt(10, 10),
		sampleAt(10, 15),
		sampleAt(15, 20),
	}

	segs := s.Summarize(context.Background(), samples)
	require.Len(t, segs, 2)

	first, second := segs[0], segs[1]

	assert.InDelta(t, 10, first.DistanceKm, 0.01)
	assert.InDelta(t, 10, first.DurationMin, 1e-9)
	assert.InDelta(t, 60, first.AvgSpeedKmh, 0.1)
	assert.InDelta(t, 60, first.MaxSpeedKmh, 0.1)
	assert.InDelta(t, 5, first.IdleMinutesBeforeNext, 1e-9)

	assert.InDelta(t, 5, second.DistanceKm, 0.01)
	assert.InDelta(t, 5, second.DurationMin, 1e-9)
	assert.InDelta(t, 60, second.AvgSpeedKmh, 0.1)
	assert.Zero(t, second.IdleMinutesBeforeNext)

	assert.True(t, !first.EndTime.Before(first.StartTime), "end time must not precede start time")
}

func TestSummarize_BriefIdleFoldedIntoDuration(t *testing.T) {
	s := NewSplitter(Config{})

	samples := []Sample{
		sampleAt(0, 0),
		sampleAt(5, 5),
		sampleAt(5, 6),
		sampleAt(10, 11),
	}

	segs := s.Summarize(context.Background(), samples)
	require.Len(t, segs, 1)

	seg := segs[0]
	assert.InDelta(t, 10, seg.DistanceKm, 0.01)
	assert.InDelta(t, 11, seg.DurationMin, 1e-9, "the folded idle minute counts toward duration")
	// 10 km over 11 minutes: the average reflects the span, not a mean
	// of instantaneous point speeds.
	assert.InDelta(t, 10.0/(11.0/60.0), seg.AvgSpeedKmh, 0.1)
	assert.InDelta(t, 60, seg.MaxSpeedKmh, 0.1)
}

func TestSummarize_SingleSampleYieldsZeroSegment(t *testing.T) {
	s := NewSplitter(Config{})

	segs := s.Summarize(context.Background(), []Sample{sampleAt(3, 7)})
	require.Len(t, segs, 1)

	seg := segs[0]
	assert.Zero(t, seg.DistanceKm)
	assert.Zero(t, seg.DurationMin)
	assert.Zero(t, seg.AvgSpeedKmh)
	assert.Zero(t, seg.MaxSpeedKmh)
	assert.Equal(t, seg.StartTime, seg.EndTime)
}

func TestSummarize_StationarySequenceZeroDistance(t *testing.T) {
	s := NewSplitter(Config{})

	var samples []Sample
	for i := 0; i < 8; i++ {
		samples = append(samples, reported(sampleAt(0, float64(i)), 0))
	}

	segs := s.Summarize(context.Background(), samples)
	require.Len(t, segs, 1)
	assert.Zero(t, segs[0].DistanceKm)
}

func TestSummarize_Idempotent(t *testing.T) {
	s := NewSplitter(Config{})

	samples := []Sample{
		sampleAt(0, 0),
		sampleAt(4, 4),
		sampleAt(4, 9),
		sampleAt(9, 14),
		sampleAt(9, 15),
		sampleAt(12, 18),
	}

	first := s.Summarize(context.Background(), samples)
	second := s.Summarize(context.Background(), samples)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("summaries differ between identical runs (-first +second):\n%s", diff)
	}
}

func TestSummarize_P85UnderMaxSpeed(t *testing.T) {
	s := NewSplitter(Config{})

	// Steady 30 km/h hops with a single 90 km/h burst: the p85 should
	// sit near the steady speed while max picks up the burst.
	var samples []Sample
	pos := 0.0
	for i := 0; i <= 10; i++ {
		samples = append(samples, sampleAt(pos, float64(i)))
		if i == 4 {
			pos += 1.5 // 90 km/h for one minute
		} else {
			pos += 0.5 // 30 km/h
		}
	}

	segs := s.Summarize(context.Background(), samples)
	require.Len(t, segs, 1)

	seg := segs[0]
	assert.InDelta(t, 90, seg.MaxSpeedKmh, 1)
	assert.Less(t, seg.P85SpeedKmh, seg.MaxSpeedKmh)
	assert.InDelta(t, 30, seg.P85SpeedKmh, 2)
}

func TestQuantileSpeed_Empty(t *testing.T) {
	assert.Zero(t, quantileSpeed(0.85, nil))
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := NewSplitter(Config{})
	assert.Empty(t, s.Summarize(context.Background(), nil))
}

func TestSummarize_StopThresholdBoundary(t *testing.T) {
	s := NewSplitter(Config{StopThreshold: 3 * time.Minute})

	// Exactly 3 minutes of idle: the threshold is inclusive.
	samples := []Sample{
		sampleAt(0, 0),
		sampleAt(5, 5),
		sampleAt(5, 8),
		sampleAt(10, 13),
	}

	segs := s.Summarize(context.Background(), samples)
	assert.Len(t, segs, 2, "idle equal to the stop threshold closes the segment")
}
