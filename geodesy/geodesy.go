// Package geodesy converts between geodetic coordinates (longitude and
// latitude in decimal degrees) and Earth-centered Cartesian (ECEF)
// coordinates on a spherical Earth model.
//
// The model is an authalic sphere with a single radius; no ellipsoidal
// flattening is applied. Cartesian points are expressed as r3.Vec in meters
// with the origin at the Earth's center.
package geodesy

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// EarthRadius is the mean Earth radius in meters (authalic sphere).
const EarthRadius = 6371000.

// Geodetic is a longitude/latitude pair in decimal degrees.
type Geodetic struct {
	Lon, Lat float64
}

// Sphere is a spherical Earth model of radius R meters.
// Tests may substitute a unit sphere to keep the arithmetic simple.
type Sphere struct {
	R float64
}

// DefaultSphere uses the mean Earth radius.
var DefaultSphere = Sphere{R: EarthRadius}

// Forward converts geodetic coordinates to an ECEF point in meters.
// Defined for all finite inputs; longitudes and latitudes outside the
// principal range simply wrap around the sphere.
func (s Sphere) Forward(p Geodetic) r3.Vec {
	lat := p.Lat * deg2rad
	lon := p.Lon * deg2rad

	return r3.Vec{
		X: s.R * math.Cos(lat) * math.Cos(lon),
		Y: s.R * math.Cos(lat) * math.Sin(lon),
		Z: s.R * math.Sin(lat),
	}
}

// Inverse recovers geodetic coordinates from an ECEF point.
//
// The latitude uses atan2(z, hypot(x, y)) rather than asin(z/R) so that
// points not exactly on the sphere still map to a well-defined coordinate.
// An input far from the surface is a warning condition, not an error:
// callers can inspect SurfaceDeviation to flag suspicious solutions.
func (s Sphere) Inverse(p r3.Vec) Geodetic {
	return Geodetic{
		Lon: math.Atan2(p.Y, p.X) * rad2deg,
		Lat: math.Atan2(p.Z, math.Hypot(p.X, p.Y)) * rad2deg,
	}
}

// SurfaceDeviation reports how far p sits from the model surface, in meters.
func (s Sphere) SurfaceDeviation(p r3.Vec) float64 {
	return math.Abs(r3.Norm(p) - s.R)
}
