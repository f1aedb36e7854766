/*
Package trilat estimates a point position from its distances to three
reference points (anchors) using the closed-form three-sphere intersection.

Usage:

To use this package, convert the three anchor coordinates to ECEF meters
(see the geodesy package), then call Solve with the anchors and the three
measured distances. The distances may be corrected for known biases before
the call.

Example:

	s := trilat.Solver{Surface: geodesy.DefaultSphere, Clamp: true}

	pos, approx, err := s.Solve(anchors, dists)
	if err != nil {
		log.Fatalf("failed to solve position: %v", err)
	}

	fmt.Printf("pos: x=%.3f, y=%.3f, z=%.3f approx=%v\n", pos.X, pos.Y, pos.Z, approx)

The construction builds an orthonormal frame from the anchors (ex along
anchor1->anchor2, ey from the rejection of anchor1->anchor3, ez = ex x ey),
solves the sphere equations for the local coordinates, and maps back to the
global frame.

Reference:

https://en.wikipedia.org/wiki/True-range_multilateration (three-sphere case).
*/
package trilat

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/satoshi-pes/geoloc/geodesy"
)

// frameTol is the minimum anchor separation (m) accepted when building the
// local frame. Below it the anchors do not span a usable plane.
const frameTol = 1e-6

// collinearTol rejects anchor triangles thinner than about one degree of
// opening angle. The local y coordinate divides by the triangle height, so
// a thin frame amplifies distance noise past any usable result.
const collinearTol = 0.02

var (
	// ErrDegenerateGeometry reports coincident or collinear anchors.
	ErrDegenerateGeometry = errors.New("trilat: anchors do not span a plane")

	// ErrNoIntersection reports distances inconsistent with any real
	// intersection point. Returned only when Solver.Clamp is false.
	ErrNoIntersection = errors.New("trilat: spheres do not intersect")
)

// Solver solves the three-sphere intersection.
//
// Surface is the reference sphere used to pick between the two symmetric
// roots: the solution closer to the surface is adopted, since the unknown
// point is assumed near the surface rather than at the center-mirrored
// location. Clamp selects the recovery policy for non-intersecting spheres:
// when true, the discriminant is clamped to zero and the in-plane point is
// returned as an approximate solution; when false, Solve fails with
// ErrNoIntersection.
type Solver struct {
	Surface geodesy.Sphere
	Clamp   bool
}

// Solve returns the ECEF position of the unknown point given three anchor
// positions (m) and the measured distances to each (m). Distance k must
// pair with anchor k. approx is true when the spheres did not intersect and
// the returned point is the clamped in-plane solution.
//
// Solve is a pure function of its inputs.
func (s Solver) Solve(anchors [3]r3.Vec, dists [3]float64) (pos r3.Vec, approx bool, err error) {
	p1, p2, p3 := anchors[0], anchors[1], anchors[2]
	ra, rb, rc := dists[0], dists[1], dists[2]

	// local frame: ex toward anchor2, ey in the anchor plane, ez normal
	d := r3.Norm(r3.Sub(p2, p1))
	if d <= frameTol {
		return r3.Vec{}, false, ErrDegenerateGeometry
	}
	ex := r3.Scale(1/d, r3.Sub(p2, p1))

	v13 := r3.Sub(p3, p1)
	n13 := r3.Norm(v13)
	if n13 <= frameTol {
		return r3.Vec{}, false, ErrDegenerateGeometry
	}
	i := r3.Dot(ex, v13)
	rej := r3.Sub(v13, r3.Scale(i, ex))
	j := r3.Norm(rej)
	if j <= collinearTol*n13 {
		return r3.Vec{}, false, ErrDegenerateGeometry
	}
	ey := r3.Scale(1/j, rej)
	ez := r3.Cross(ex, ey)

	// local coordinates of the unknown point from the sphere equations
	x := (sqr(ra) - sqr(rb) + sqr(d)) / (2 * d)
	y := (sqr(ra) - sqr(rc) + sqr(i) + sqr(j) - 2*i*x) / (2 * j)

	zsq := sqr(ra) - sqr(x) - sqr(y)
	base := r3.Add(p1, r3.Add(r3.Scale(x, ex), r3.Scale(y, ey)))

	// A zsq within rounding noise of zero means the point sits on the
	// anchor plane; only a genuinely negative zsq means the spheres do
	// not intersect.
	noise := 1e-9 * (sqr(ra) + sqr(d))
	switch {
	case zsq > noise:
		// two symmetric roots reflected across the anchor plane
	case zsq >= -noise:
		return base, false, nil
	default:
		if !s.Clamp {
			return r3.Vec{}, false, ErrNoIntersection
		}
		return base, true, nil
	}

	z := math.Sqrt(zsq)
	hi := r3.Add(base, r3.Scale(z, ez))
	lo := r3.Sub(base, r3.Scale(z, ez))

	// test the two possible solutions.
	// the solution closer to the surface is adopted as the true solution.
	if s.Surface.SurfaceDeviation(lo) < s.Surface.SurfaceDeviation(hi) {
		return lo, false, nil
	}
	return hi, false, nil
}

func sqr(x float64) float64 {
	return x * x
}
