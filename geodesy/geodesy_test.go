package geodesy

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func ExampleSphere_Inverse() {
	s := Sphere{R: 1}
	p := s.Inverse(r3.Vec{X: 0, Y: 1, Z: 0})
	fmt.Printf("lon=%.4f lat=%.4f\n", p.Lon, p.Lat)
	// Output: lon=90.0000 lat=0.0000
}

func TestForwardKnownPoints(t *testing.T) {
	cases := []struct {
		name string
		in   Geodetic
		want r3.Vec
	}{
		{"origin", Geodetic{Lon: 0, Lat: 0}, r3.Vec{X: EarthRadius}},
		{"east", Geodetic{Lon: 90, Lat: 0}, r3.Vec{Y: EarthRadius}},
		{"north pole", Geodetic{Lon: 0, Lat: 90}, r3.Vec{Z: EarthRadius}},
		{"south pole", Geodetic{Lon: 45, Lat: -90}, r3.Vec{Z: -EarthRadius}},
	}

	// 1e-6 m absolute: well below any geodetic use, above cos(pi/2) noise
	const tol = 1e-6
	for _, c := range cases {
		got := DefaultSphere.Forward(c.in)
		if !scalar.EqualWithinAbs(got.X, c.want.X, tol) ||
			!scalar.EqualWithinAbs(got.Y, c.want.Y, tol) ||
			!scalar.EqualWithinAbs(got.Z, c.want.Z, tol) {
			t.Errorf("%s: Forward(%+v) = %+v, want %+v", c.name, c.in, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	points := []Geodetic{
		{Lon: 0, Lat: 0},
		{Lon: 1, Lat: 0},
		{Lon: 0, Lat: 1},
		{Lon: -122.4194, Lat: 37.7749},
		{Lon: 139.6917, Lat: 35.6895},
		{Lon: -43.1729, Lat: -22.9068},
		{Lon: 179.9, Lat: -89.0},
	}

	const tol = 1e-6 // degrees
	for _, p := range points {
		got := DefaultSphere.Inverse(DefaultSphere.Forward(p))
		if !scalar.EqualWithinAbs(got.Lon, p.Lon, tol) || !scalar.EqualWithinAbs(got.Lat, p.Lat, tol) {
			t.Errorf("round trip %+v = %+v", p, got)
		}
	}
}

func TestInverseOffSphere(t *testing.T) {
	// a point 10 km above the surface still maps to the same coordinate
	s := DefaultSphere
	on := s.Forward(Geodetic{Lon: 10, Lat: 20})
	off := r3.Scale((s.R+10e3)/s.R, on)

	got := s.Inverse(off)
	if !scalar.EqualWithinAbs(got.Lon, 10, 1e-9) || !scalar.EqualWithinAbs(got.Lat, 20, 1e-9) {
		t.Errorf("Inverse(off-sphere) = %+v, want lon=10 lat=20", got)
	}
	if dev := s.SurfaceDeviation(off); !scalar.EqualWithinAbs(dev, 10e3, 1e-3) {
		t.Errorf("SurfaceDeviation = %v, want 10e3", dev)
	}
}

func TestUnitSphere(t *testing.T) {
	s := Sphere{R: 1}
	got := s.Forward(Geodetic{Lon: 0, Lat: 90})
	if !scalar.EqualWithinAbs(got.Z, 1, 1e-15) {
		t.Errorf("unit sphere pole = %+v", got)
	}
	if dev := s.SurfaceDeviation(r3.Vec{X: 2}); dev != 1 {
		t.Errorf("SurfaceDeviation = %v, want 1", dev)
	}
}
