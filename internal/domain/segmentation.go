package domain

// SegmentationTrainingResult summarizes a batch segmentation training run.
type SegmentationTrainingResult struct {
	SilhouetteScore float64 `json:"silhouette_score"`
	ClusterCount    int     `json:"n_clusters"`
	UserCount       int     `json:"n_users"`
}
