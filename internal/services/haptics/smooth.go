package haptics

import (
	"gonum.org/v1/gonum/mat"
)

// Savitzky-Golay smoothing parameters. The window must be odd and at least
// degree+2 for the least-squares fit to be determined.
const (
	smoothWindow = 11
	smoothDegree = 3
)

// savgolProj is the least-squares projection matrix for one smoothing
// window: row i gives the weights that evaluate the fitted polynomial at
// window position i. Computed once at package init.
var savgolProj = savgolProjection(smoothWindow, smoothDegree)

// savgolProjection builds P = A (AᵀA)⁻¹ Aᵀ where A is the Vandermonde
// matrix of window positions centered on zero
func savgolProjection(window, degree int) *mat.Dense {
	half := window / 2

	a := mat.NewDense(window, degree+1, nil)
	for i := 0; i < window; i++ {
		x := float64(i - half)
		p := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)

	var inv mat.Dense
	if err := inv.Inverse(&ata); err != nil {
		// The Vandermonde normal matrix is well conditioned for the fixed
		// window/degree pair; a failure here is a programming error.
		panic(err)
	}

	var tmp, proj mat.Dense
	tmp.Mul(a, &inv)
	proj.Mul(&tmp, a.T())
	return &proj
}

// Smooth applies a centered Savitzky-Golay filter (window 11, degree 3) to a
// resampled series. Output length equals input length. Series shorter than
// the window are returned unchanged (pass-through policy); the filter is
// undefined below its window size and padding would distort the edges.
func Smooth(series []float64) []float64 {
	n := len(series)
	out := make([]float64, n)

	if n < smoothWindow {
		copy(out, series)
		return out
	}

	half := smoothWindow / 2

	// Leading edge: evaluate the polynomial fitted to the first window
	for i := 0; i < half; i++ {
		out[i] = windowDot(savgolProj.RawRowView(i), series[:smoothWindow])
	}

	// Interior: centered window, center row of the projection
	center := savgolProj.RawRowView(half)
	for i := half; i < n-half; i++ {
		out[i] = windowDot(center, series[i-half:i+half+1])
	}

	// Trailing edge: polynomial fitted to the last window
	for i := n - half; i < n; i++ {
		row := smoothWindow - (n - i)
		out[i] = windowDot(savgolProj.RawRowView(row), series[n-smoothWindow:])
	}

	return out
}

func windowDot(weights, values []float64) float64 {
	sum := 0.0
	for i, w := range weights {
		sum += w * values[i]
	}
	return sum
}
