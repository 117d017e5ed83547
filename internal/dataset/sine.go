package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/autoenc/internal/seq"
)

// SineWindows generates n windows of width samples from sine waves with
// random phase and frequency, rescaled from [-1, 1] to [0, 1] so a
// sigmoid reconstruction head can match them.
func SineWindows(rng *rand.Rand, n, width int) ([][]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("windows %d: %w", n, ErrSamples)
	}
	if width < 0 {
		return nil, fmt.Errorf("width %d: %w", width, seq.ErrLength)
	}

	windows := make([][]float32, n)
	for i := range windows {
		phase := rng.Float64() * 2 * math.Pi
		freq := 0.1 + rng.Float64()*0.4

		w := make([]float32, width)
		for j := range w {
			w[j] = float32(0.5 + 0.5*math.Sin(phase+freq*float64(j)))
		}
		windows[i] = w
	}
	return windows, nil
}

// Corrupt returns a copy of data with additive Gaussian noise of the
// given standard deviation, clamped back to [0, 1]. The input is left
// untouched so it can serve as the clean reconstruction target.
func Corrupt(rng *rand.Rand, data [][]float32, stddev float32) [][]float32 {
	out := make([][]float32, len(data))
	for i, row := range data {
		noisy := make([]float32, len(row))
		for j, v := range row {
			nv := v + stddev*float32(rng.NormFloat64())
			if nv < 0 {
				nv = 0
			} else if nv > 1 {
				nv = 1
			}
			noisy[j] = nv
		}
		out[i] = noisy
	}
	return out
}
