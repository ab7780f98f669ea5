package geo

import "math"

// EarthRadiusMiles is Earth's radius in miles for Haversine calculation.
const EarthRadiusMiles = 3958.7613

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineMiles calculates the great-circle distance between two points
// on Earth in miles using the Haversine formula.
func HaversineMiles(a, b Point) float64 {
	const degToRad = math.Pi / 180
	dLat := (b.Lat - a.Lat) * degToRad
	dLng := (b.Lng - a.Lng) * degToRad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(a.Lat*degToRad)*math.Cos(b.Lat*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMiles * c
}

// PathMiles sums the leg distances along an ordered sequence of points.
// Fewer than two points means no distance covered.
func PathMiles(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineMiles(points[i-1], points[i])
	}
	return total
}
