package ml

import "math"

// StandardScaler centers each feature to zero mean and unit variance.
// The fitted means and deviations are part of the persisted model bundle,
// so the struct only carries exported, gob-encodable state.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// Fit computes per-feature mean and standard deviation over the samples.
func (s *StandardScaler) Fit(samples [][]float64) {
	if len(samples) == 0 {
		return
	}

	dim := len(samples[0])
	s.Mean = make([]float64, dim)
	s.Std = make([]float64, dim)

	for _, sample := range samples {
		for j, v := range sample {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= float64(len(samples))
	}

	for _, sample := range samples {
		for j, v := range sample {
			d := v - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := range s.Std {
		s.Std[j] = math.Sqrt(s.Std[j] / float64(len(samples)))
		// Constant features scale to zero distance instead of dividing by zero
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
}

// Transform scales a single sample using the fitted parameters.
func (s *StandardScaler) Transform(sample []float64) []float64 {
	out := make([]float64, len(sample))
	for j, v := range sample {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// TransformAll scales every sample using the fitted parameters.
func (s *StandardScaler) TransformAll(samples [][]float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i, sample := range samples {
		out[i] = s.Transform(sample)
	}
	return out
}

// FitTransform fits the scaler and returns the scaled samples.
func (s *StandardScaler) FitTransform(samples [][]float64) [][]float64 {
	s.Fit(samples)
	return s.TransformAll(samples)
}
