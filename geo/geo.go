// Package geo provides great-circle distance and bearing primitives for
// GPS position data. All functions are pure and safe for concurrent use.
package geo

import (
	"errors"
	"math"

	"github.com/twpayne/go-polyline"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// DistanceKm calculates the great-circle distance between two points in
// kilometers using the Haversine formula. DistanceKm(a, a) is 0 and the
// function is symmetric in its arguments. Non-finite input yields NaN,
// which callers treat the same as a missing sample.
func DistanceKm(a, b Point) float64 {
	if !Valid(a) || !Valid(b) {
		return math.NaN()
	}

	// Identical points short-circuit to exactly 0.
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dlat := (b.Latitude - a.Latitude) * math.Pi / 180
	dlon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// SpeedKmh converts a distance and elapsed duration into an average
// speed. A non-positive or non-finite duration returns 0: a sample pair
// with no elapsed time is treated as stationary, not as an error.
func SpeedKmh(distanceKm, durationHours float64) float64 {
	if durationHours <= 0 || math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		return 0
	}
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0
	}
	return distanceKm / durationHours
}

// BearingDegrees calculates the initial great-circle bearing from a to b
// in degrees, normalized to [0, 360). Returns NaN for non-finite input.
func BearingDegrees(a, b Point) float64 {
	if !Valid(a) || !Valid(b) {
		return math.NaN()
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dlon := (b.Longitude - a.Longitude) * math.Pi / 180

	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	bearing := math.Atan2(y, x) * 180 / math.Pi

	return math.Mod(bearing+360, 360)
}

// Interpolate calculates a point along the path between two points.
// t=0 returns a, t=1 returns b, t=0.5 the midpoint. Linear interpolation
// is used; for hop-scale distances between consecutive GPS fixes the
// error against true spherical interpolation is negligible.
func Interpolate(a, b Point, t float64) Point {
	return Point{
		Latitude:  a.Latitude + t*(b.Latitude-a.Latitude),
		Longitude: a.Longitude + t*(b.Longitude-a.Longitude),
	}
}

// Valid reports whether a point has finite coordinates within
// latitude [-90, 90] and longitude [-180, 180].
func Valid(p Point) bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// DecodePolyline decodes a Google encoded polyline string into a point
// sequence. Decoded coordinates are validated; a polyline containing an
// out-of-range vertex is rejected as a whole.
func DecodePolyline(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, errors.New("failed to decode polyline: " + err.Error())
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{Latitude: coord[0], Longitude: coord[1]}
		if !Valid(points[i]) {
			return nil, errors.New("decoded polyline contains invalid coordinates")
		}
	}
	return points, nil
}
