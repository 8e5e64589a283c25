package domain

// FeatureVector is an ordered set of named numeric features for one user.
// The key order is part of the trained model schema: training and
// prediction must see the exact same names in the exact same positions.
type FeatureVector struct {
	Names  []string
	Values []float64
}

// Get returns the value of a named feature, or zero when absent.
func (f *FeatureVector) Get(name string) float64 {
	for i, n := range f.Names {
		if n == name {
			return f.Values[i]
		}
	}
	return 0
}
