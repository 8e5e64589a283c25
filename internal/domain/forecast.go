package domain

// Forecast is the projected daily balance trajectory for one user.
type Forecast struct {
	Dates            []string  `json:"dates"`
	Values           []float64 `json:"values"`
	CurrentBalance   float64   `json:"current_balance"`
	PredictedBalance float64   `json:"predicted_balance"`
	Trend            string    `json:"trend"`
	Summary          string    `json:"summary"`
}

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// ForecastTrainingResult summarizes one per-user forecast training run.
type ForecastTrainingResult struct {
	Status     string `json:"status"`
	DataPoints int    `json:"data_points"`
	DateRange  string `json:"date_range"`
}
