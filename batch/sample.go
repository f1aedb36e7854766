// Package batch reads sample tables, trilaterates each sample, and writes
// result tables. One bad row never stops the batch: malformed rows are
// skipped and counted, and per-sample solver failures are carried into the
// output as a row status.
package batch

import "github.com/satoshi-pes/geoloc/geodesy"

// Anchor is a reference point with known geodetic coordinates and a
// measured distance (m) from the unknown sample point.
type Anchor struct {
	Point geodesy.Geodetic
	Dist  float64
}

// Sample is one input row: a named point with exactly three anchors.
// Anchor order only matters insofar as each distance pairs with its
// coordinates.
type Sample struct {
	Name    string
	Anchors [3]Anchor
}

// Status classifies the outcome of processing one sample. Its String form
// appears verbatim in the output status column.
type Status int

const (
	// StatusOK marks an exact closed-form solution.
	StatusOK Status = iota

	// StatusApprox marks a clamped solution: the measured distances did
	// not intersect, and the returned point is the nearest in-plane one.
	StatusApprox

	// StatusDegenerate marks coincident or collinear anchors.
	StatusDegenerate

	// StatusNoIntersection marks non-intersecting distances under the
	// fail policy. No coordinate is produced.
	StatusNoIntersection
)

var statusNames = [...]string{
	StatusOK:             "ok",
	StatusApprox:         "approx",
	StatusDegenerate:     "degenerate",
	StatusNoIntersection: "no-intersection",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Solved reports whether the solution carries a coordinate.
func (s Status) Solved() bool {
	return s == StatusOK || s == StatusApprox
}

// Solution is the estimated coordinate for a sample, or an explicit failure
// marker. Point is meaningful only when Status.Solved().
type Solution struct {
	Name   string
	Point  geodesy.Geodetic
	Status Status
}
