package domain

// UserContext is the composed view of one user's financial situation,
// consumed by the API and chat layers.
type UserContext struct {
	User            *User             `json:"user"`
	Cluster         *Cluster          `json:"cluster"`
	Transactions    []*Transaction    `json:"transactions"`
	Forecast        *Forecast         `json:"forecast"`
	Recommendations []*Recommendation `json:"recommendations"`
}
