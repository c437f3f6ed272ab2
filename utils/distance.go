package utils

import (
	"context"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix computes the pairwise euclidean distances between two point clouds. Entry (i, j) is the
// distance from a[i] to b[j]. Rows are filled in parallel groups.
func DistanceMatrix(ctx context.Context, a, b []r3.Vector) (*mat.Dense, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyPointSet
	}
	distances := mat.NewDense(len(a), len(b), nil)
	err := GroupWorkParallel(ctx, len(a), func(_, _, _, _ int) MemberWorkFunc {
		return func(_, i int) {
			row := distances.RawRowView(i)
			for j, v := range b {
				row[j] = a[i].Distance(v)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return distances, nil
}

// ClosestDistanceField returns, for every grid point, the distance to the nearest target point.
func ClosestDistanceField(ctx context.Context, grid, targets []r3.Vector) ([]float64, error) {
	if len(targets) == 0 {
		return nil, ErrEmptyPointSet
	}
	field := make([]float64, len(grid))
	err := GroupWorkParallel(ctx, len(grid), func(_, _, _, _ int) MemberWorkFunc {
		return func(_, i int) {
			closest := math.Inf(1)
			for _, target := range targets {
				closest = math.Min(closest, grid[i].Distance(target))
			}
			field[i] = closest
		}
	})
	if err != nil {
		return nil, err
	}
	return field, nil
}
