// Package geo provides spherical-earth navigation primitives shared by the
// assessment engine: great-circle distance and dead-reckoning projection.
// All distances are in nautical miles.
package geo

import "math"

// EarthRadiusNm is the mean Earth radius in nautical miles.
const EarthRadiusNm = 3440.065

// Point is a WGS84-ish latitude/longitude pair in degrees. The math here
// treats the Earth as a sphere; no ellipsoid correction is applied.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the haversine great-circle distance between a and b in
// nautical miles. Symmetric, and zero when a == b.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lon1 := radians(a.Lon)
	lat2 := radians(b.Lat)
	lon2 := radians(b.Lon)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return EarthRadiusNm * c
}

// Project returns the position reached from origin after travelling at
// speedKnots on a constant course (degrees true) for the given number of
// minutes. Uses spherical trigonometry rather than a flat-earth offset so
// results stay accurate over tens of minutes at harbour scale.
func Project(origin Point, speedKnots, courseDeg, minutes float64) Point {
	lat := radians(origin.Lat)
	lon := radians(origin.Lon)
	course := radians(courseDeg)

	distanceNm := speedKnots * (minutes / 60.0)
	dr := distanceNm / EarthRadiusNm

	newLat := math.Asin(
		math.Sin(lat)*math.Cos(dr) +
			math.Cos(lat)*math.Sin(dr)*math.Cos(course),
	)
	newLon := lon + math.Atan2(
		math.Sin(course)*math.Sin(dr)*math.Cos(lat),
		math.Cos(dr)-math.Sin(lat)*math.Sin(newLat),
	)

	return Point{Lat: degrees(newLat), Lon: degrees(newLon)}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
