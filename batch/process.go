package batch

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/satoshi-pes/geoloc/geodesy"
	"github.com/satoshi-pes/geoloc/trilat"
)

// Processor trilaterates samples. Workers bounds the number of samples
// solved concurrently by ProcessAll; zero or one means sequential.
type Processor struct {
	Sphere  geodesy.Sphere
	Solver  trilat.Solver
	Workers int
}

// Process solves one sample: forward-convert the anchors to ECEF, run the
// three-sphere solver, convert the result back to geodetic coordinates.
// Solver failures become a flagged Solution, never an error.
func (p Processor) Process(s Sample) Solution {
	var (
		anchors [3]r3.Vec
		dists   [3]float64
	)
	for k, a := range s.Anchors {
		anchors[k] = p.Sphere.Forward(a.Point)
		dists[k] = a.Dist
	}

	pos, approx, err := p.Solver.Solve(anchors, dists)
	switch {
	case errors.Is(err, trilat.ErrDegenerateGeometry):
		return Solution{Name: s.Name, Status: StatusDegenerate}
	case errors.Is(err, trilat.ErrNoIntersection):
		return Solution{Name: s.Name, Status: StatusNoIntersection}
	}

	st := StatusOK
	if approx {
		st = StatusApprox
	}
	return Solution{Name: s.Name, Point: p.Sphere.Inverse(pos), Status: st}
}

// ProcessAll solves every sample and returns the solutions in input order.
// Samples are independent and immutable, so with Workers > 1 they are
// solved concurrently; each result is written into a pre-sized slice by
// sample index, so order never depends on scheduling.
func (p Processor) ProcessAll(ctx context.Context, samples []Sample) ([]Solution, error) {
	out := make([]Solution, len(samples))

	if p.Workers <= 1 {
		for k, s := range samples {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[k] = p.Process(s)
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for k, s := range samples {
		k, s := k, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[k] = p.Process(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
