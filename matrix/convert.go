// SPDX-License-Identifier: MIT

package matrix

import "gonum.org/v1/gonum/mat"

// ToGonum copies m into a new gonum *mat.Dense of the same shape, so grids can
// be handed to gonum and gonum/plot consumers.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions for an empty matrix, or ErrOutOfRange from a misbehaving Matrix implementation.
// Complexity: O(r*c) time and memory.
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, validatorErrorf("ToGonum", err)
	}
	vals, err := flatten(m)
	if err != nil {
		return nil, validatorErrorf("ToGonum", err)
	}
	if len(vals) == 0 {
		return nil, validatorErrorf("ToGonum", ErrInvalidDimensions)
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)

	return mat.NewDense(m.Rows(), m.Cols(), cp), nil
}
