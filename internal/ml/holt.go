package ml

// HoltModel is a fitted Holt linear-trend exponential smoothing model.
// Level and Trend hold the smoothed state after the last observation,
// which is all that is needed to project the series forward.
type HoltModel struct {
	Alpha float64
	Beta  float64
	Level float64
	Trend float64
}

// FitHolt runs Holt's linear method over the series and returns the
// fitted model. The series must have at least two points.
func FitHolt(series []float64, alpha, beta float64) *HoltModel {
	m := &HoltModel{
		Alpha: alpha,
		Beta:  beta,
		Level: series[0],
		Trend: series[1] - series[0],
	}

	for _, v := range series[1:] {
		prevLevel := m.Level
		m.Level = alpha*v + (1-alpha)*(m.Level+m.Trend)
		m.Trend = beta*(m.Level-prevLevel) + (1-beta)*m.Trend
	}

	return m
}

// Forecast projects the series h steps past the last observation.
func (m *HoltModel) Forecast(h int) []float64 {
	out := make([]float64, h)
	for i := 0; i < h; i++ {
		out[i] = m.Level + float64(i+1)*m.Trend
	}
	return out
}
