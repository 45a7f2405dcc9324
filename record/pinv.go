package record

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// PSEUDOINVERSE_EPSILON is the singular value below which a basis axis is
// considered collapsed.
const PSEUDOINVERSE_EPSILON = 1e-8

// PseudoInverse returns the inverse of m, or its Moore-Penrose pseudo-inverse
// when m is singular or nearly so. Singular values below epsilon are treated
// as zero, so a degenerate basis maps deltas along its collapsed axes to nothing
// instead of to infinity.
func PseudoInverse(m mgl64.Mat3, epsilon float64) mgl64.Mat3 {
	if math.Abs(m.Det()) > epsilon {
		return m.Inv()
	}

	// mgl64 is column-major, gonum row-major: copying the raw slice transposes.
	a := mat.NewDense(3, 3, m[:]).T()

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFull) {
		return mgl64.Mat3{}
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	// A+ = V * S+ * U^T
	inv := mat.NewDiagDense(3, nil)
	for i, s := range values {
		if s >= epsilon {
			inv.SetDiag(i, 1/s)
		}
	}

	var vs, result mat.Dense
	vs.Mul(&v, inv)
	result.Mul(&vs, u.T())

	var out mgl64.Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.Set(row, col, result.At(row, col))
		}
	}
	return out
}
