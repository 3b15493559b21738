// Package geo provides the small set of geographic primitives the A* router
// needs: mercator projection, great-circle distance, compass bearing
// quantized into 256 buckets, and linear interpolation along a segment.
//
// All distances are in meters. All bearings are quantized to the OpenLR
// convention: a full turn is divided into 256 buckets of 360/256 ≈ 1.406°
// each, bucket 0 pointing due north and increasing clockwise.
package geo

import "math"

// BearingBuckets is the number of quantization buckets in a full turn.
const BearingBuckets = 256

// earthRadiusMeters is the WGS84 equatorial radius, used both for the
// mercator projection and for great-circle distance.
const earthRadiusMeters = 6378137.0

// degToRad converts degrees to radians.
func degToRad(d float64) float64 { return d * math.Pi / 180 }

// radToDeg converts radians to degrees.
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// LatLon is a geographic coordinate in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Point is a mercator-projected coordinate, in meters on the projected plane.
// The router and road graph operate exclusively in this space so that
// distance and interpolation are simple planar arithmetic.
type Point struct {
	X float64
	Y float64
}

// FromLatLon projects a geographic coordinate onto the mercator plane.
func FromLatLon(ll LatLon) Point {
	x := earthRadiusMeters * degToRad(ll.Lon)
	y := earthRadiusMeters * math.Log(math.Tan(math.Pi/4+degToRad(ll.Lat)/2))

	return Point{X: x, Y: y}
}

// ToLatLon is the inverse of FromLatLon.
func (p Point) ToLatLon() LatLon {
	lon := radToDeg(p.X / earthRadiusMeters)
	lat := radToDeg(2*math.Atan(math.Exp(p.Y/earthRadiusMeters)) - math.Pi/2)

	return LatLon{Lat: lat, Lon: lon}
}

// DistanceOnEarth returns the great-circle distance, in meters, between two
// mercator-projected points. Points are converted back to lat/lon and the
// haversine formula is applied; this matches how the original decoder
// measures distance even though its working points live in mercator space.
func DistanceOnEarth(a, b Point) float64 {
	la := a.ToLatLon()
	lb := b.ToLatLon()

	phi1 := degToRad(la.Lat)
	phi2 := degToRad(lb.Lat)
	dPhi := degToRad(lb.Lat - la.Lat)
	dLambda := degToRad(lb.Lon - la.Lon)

	sinDPhi := math.Sin(dPhi / 2)
	sinDLambda := math.Sin(dLambda / 2)

	h := sinDPhi*sinDPhi + math.Cos(phi1)*math.Cos(phi2)*sinDLambda*sinDLambda
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// PointAtSegment returns the point on segment a→b at distance d (meters)
// from a, measured along the straight line between the two mercator points.
// If d exceeds the segment length the result extrapolates past b; callers
// that need strict clamping must do so themselves.
func PointAtSegment(a, b Point, d float64) Point {
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	if length == 0 {
		return a
	}
	t := d / length

	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Bearing computes the compass bearing from a to b in quantized buckets
// [0, BearingBuckets). 0 points north; the value increases clockwise.
func Bearing(a, b Point) uint8 {
	la := a.ToLatLon()
	lb := b.ToLatLon()

	phi1 := degToRad(la.Lat)
	phi2 := degToRad(lb.Lat)
	dLambda := degToRad(lb.Lon - la.Lon)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	deg := radToDeg(math.Atan2(y, x))
	if deg < 0 {
		deg += 360
	}
	if deg > 360 {
		deg = 360
	}

	bucket := int(deg / (360.0 / BearingBuckets))
	if bucket < 0 {
		bucket = 0
	}
	if bucket > BearingBuckets-1 {
		bucket = BearingBuckets - 1
	}

	return uint8(bucket)
}

// BearingDiff returns the unsigned difference, in buckets, between two
// quantized bearings. The result is always in [0, BearingBuckets/2].
func BearingDiff(expected, actual uint8) int {
	d := int(expected) - int(actual)
	if d < 0 {
		d = -d
	}
	if d > BearingBuckets/2 {
		d = BearingBuckets - d
	}

	return d
}

// BearingBucketRadians converts a count of bearing buckets into the
// equivalent angle in radians (one bucket is 360/256 degrees).
func BearingBucketRadians(buckets int) float64 {
	return float64(buckets) * (360.0 / BearingBuckets) * math.Pi / 180
}
