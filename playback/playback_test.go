package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetglass/tripcore/segments"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func sample(lat float64, minutes float64) segments.Sample {
	return segments.Sample{
		Latitude: lat,
		Time:     t0.Add(time.Duration(minutes * float64(time.Minute))),
	}
}

func twoLegTrip() []segments.Segment {
	return []segments.Segment{
		{Points: []segments.Sample{sample(0, 0), sample(0.1, 10)}},
		{Points: []segments.Sample{sample(0.1, 15), sample(0.2, 25)}},
	}
}

func TestPositionAt_NoPoints(t *testing.T) {
	_, ok := PositionAt(nil, t0)
	assert.False(t, ok)

	_, ok = PositionAt([]segments.Segment{{}}, t0)
	assert.False(t, ok)
}

func TestPositionAt_ClampsBeforeAndAfter(t *testing.T) {
	segs := twoLegTrip()

	before, ok := PositionAt(segs, t0.Add(-time.Hour))
	require.True(t, ok)
	assert.Zero(t, before.Latitude)

	after, ok := PositionAt(segs, t0.Add(time.Hour))
	require.True(t, ok)
	assert.InDelta(t, 0.2, after.Latitude, 1e-9)
}

func TestPositionAt_InterpolatesWithinHop(t *testing.T) {
	segs := twoLegTrip()

	// Midway through the first 10-minute hop.
	p, ok := PositionAt(segs, t0.Add(5*time.Minute))
	require.True(t, ok)
	assert.InDelta(t, 0.05, p.Latitude, 1e-9)
}

func TestPositionAt_ExactFixTime(t *testing.T) {
	segs := twoLegTrip()

	p, ok := PositionAt(segs, t0.Add(10*time.Minute))
	require.True(t, ok)
	assert.InDelta(t, 0.1, p.Latitude, 1e-9)
}

func TestPositionAt_HoldsPositionDuringStop(t *testing.T) {
	segs := twoLegTrip()

	// Between the first segment's end (minute 10) and the second's
	// start (minute 15) the vehicle is stopped at the 0.1 mark.
	p, ok := PositionAt(segs, t0.Add(12*time.Minute))
	require.True(t, ok)
	assert.InDelta(t, 0.1, p.Latitude, 1e-9)
}
