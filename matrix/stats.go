// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// flatten returns the row-major values of m. For *Dense the backing slice is
// returned as-is; callers must treat the result as read-only.
func flatten(m Matrix) ([]float64, error) {
	if d, ok := m.(*Dense); ok {
		return d.data, nil
	}
	out := make([]float64, 0, m.Rows()*m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// MaxAbsDiff returns max |a[i,j] - b[i,j]| (the L∞ distance of the two
// matrices viewed as vectors).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func MaxAbsDiff(a, b Matrix) (float64, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, validatorErrorf("MaxAbsDiff", err)
	}
	av, err := flatten(a)
	if err != nil {
		return 0, validatorErrorf("MaxAbsDiff", err)
	}
	bv, err := flatten(b)
	if err != nil {
		return 0, validatorErrorf("MaxAbsDiff", err)
	}

	return floats.Distance(av, bv, math.Inf(1)), nil
}

// Mean returns the arithmetic mean of all elements.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions for an empty matrix.
// Complexity: O(r*c).
func Mean(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, validatorErrorf("Mean", err)
	}
	vals, err := flatten(m)
	if err != nil {
		return 0, validatorErrorf("Mean", err)
	}

	if len(vals) == 0 {
		return 0, validatorErrorf("Mean", ErrInvalidDimensions)
	}

	return stat.Mean(vals, nil), nil
}

// MinMax returns the smallest and largest element.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions for an empty matrix.
// Complexity: O(r*c).
func MinMax(m Matrix) (lo, hi float64, err error) {
	if err = ValidateNotNil(m); err != nil {
		return 0, 0, validatorErrorf("MinMax", err)
	}
	vals, err := flatten(m)
	if err != nil {
		return 0, 0, validatorErrorf("MinMax", err)
	}

	if len(vals) == 0 {
		return 0, 0, validatorErrorf("MinMax", ErrInvalidDimensions)
	}

	return floats.Min(vals), floats.Max(vals), nil
}
