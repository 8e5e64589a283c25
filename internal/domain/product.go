package domain

// Product is a financial product from the catalog. The catalog is owned
// by another service; the core only reads it.
type Product struct {
	ID            int
	Name          string
	Category      string
	Description   string
	Tags          *string
	InterestRate  *float64
	Fees          *float64
	MinBalance    *float64
	TargetCluster *string
}
