package indicator

import "math"

// Normalize rescales a price series into the 0.0~1.0 band for sparkline
// rendering. A flat series maps to 0.5 everywhere.
func Normalize(points []float64) []float64 {
	if len(points) == 0 {
		return nil
	}
	low := math.Inf(1)
	high := math.Inf(-1)
	for _, p := range points {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	out := make([]float64, len(points))
	if high == low {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, p := range points {
		out[i] = (p - low) / (high - low)
	}
	return out
}
