package domain

// Cluster is one behavioral segment. The four entries are a fixed table;
// only the user assignments change with retraining.
type Cluster struct {
	ID          int
	Name        string
	Description string
}
