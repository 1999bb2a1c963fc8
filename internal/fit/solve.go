package fit

import (
	"errors"
	"math"
)

// errSingular is returned by solveNormal when the system has no unique
// solution. The fitter responds by increasing the damping factor rather
// than surfacing this directly.
var errSingular = errors.New("normal matrix is singular")

// solveNormal solves the 4x4 linear system a*x = b using Gaussian
// elimination with partial pivoting. The fitter calls it once per damped
// Gauss-Newton step with a = J^T*J + damping and b = -J^T*r.
func solveNormal(a [4][4]float64, b [4]float64) ([4]float64, error) {
	var aug [4][5]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			aug[i][j] = a[i][j]
		}
		aug[i][4] = b[i]
	}

	// Forward elimination with partial pivoting.
	for col := 0; col < 4; col++ {
		pivot := col
		maxAbs := math.Abs(aug[col][col])
		for r := col + 1; r < 4; r++ {
			if math.Abs(aug[r][col]) > maxAbs {
				maxAbs = math.Abs(aug[r][col])
				pivot = r
			}
		}
		if maxAbs == 0 {
			return [4]float64{}, errSingular
		}
		if pivot != col {
			aug[col], aug[pivot] = aug[pivot], aug[col]
		}
		for r := col + 1; r < 4; r++ {
			factor := aug[r][col] / aug[col][col]
			for c := col; c < 5; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	// Back substitution.
	var x [4]float64
	for i := 3; i >= 0; i-- {
		if aug[i][i] == 0 {
			return [4]float64{}, errSingular
		}
		sum := aug[i][4]
		for j := i + 1; j < 4; j++ {
			sum -= aug[i][j] * x[j]
		}
		x[i] = sum / aug[i][i]
	}
	return x, nil
}
