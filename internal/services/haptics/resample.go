package haptics

import "fmt"

// Resample maps a feature series of length M onto n uniformly spaced points
// over the original index range [0, M-1] using linear interpolation. The
// result never extrapolates beyond the first or last input value.
func Resample(series []float64, n int) ([]float64, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: empty input series", ErrDegenerateSeries)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: target length %d", ErrDegenerateSeries, n)
	}

	out := make([]float64, n)

	if len(series) == 1 {
		for i := range out {
			out[i] = series[0]
		}
		return out, nil
	}
	if n == 1 {
		out[0] = series[0]
		return out, nil
	}

	step := float64(len(series)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(series)-1 {
			out[i] = series[len(series)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = series[idx] + frac*(series[idx+1]-series[idx])
	}

	return out, nil
}
