package segmenting

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fincoach/fincoach-core/infrastructure/modelstore"
	"github.com/fincoach/fincoach-core/infrastructure/repository"
	"github.com/fincoach/fincoach-core/internal/domain"
	"github.com/fincoach/fincoach-core/internal/ml"
)

const (
	// DefaultClusterIndex is returned by Predict when no model has been
	// trained yet: every unknown user is a New/Infrequent user.
	DefaultClusterIndex = 3

	clusterCount         = 4
	kmeansSeed           = 42
	clusterModelArtifact = "cluster_model.gob"

	maxExtractWorkers = 8
)

// clusterTable is the fixed segment catalog. Cluster indices are bound
// to these names by centroid ranking after each training run, not by
// the raw partitioner label (see Train).
var clusterTable = []*domain.Cluster{
	{ID: 0, Name: "Frugal Savers", Description: "Conservative spenders who prioritize savings and make careful financial decisions."},
	{ID: 1, Name: "Average Spenders", Description: "Moderate spenders with balanced financial habits and regular transaction patterns."},
	{ID: 2, Name: "High-Value Transactors", Description: "High-volume transactors with significant spending power and frequent activity."},
	{ID: 3, Name: "New/Infrequent Users", Description: "New customers or infrequent users with limited transaction history."},
}

// modelBundle is the persisted segmentation artifact: the fitted scaler,
// the fitted partitioner and the exact feature-key order they were
// trained with.
type modelBundle struct {
	Scaler      ml.StandardScaler
	KMeans      ml.KMeans
	FeatureKeys []string
}

type SegmentationService interface {
	Train(ctx context.Context) (*domain.SegmentationTrainingResult, error)
	Predict(userID int) (int, error)
	Describe(clusterIndex int) *domain.Cluster
}

type Service struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	clusterRepo     repository.ClusterRepository
	store           *modelstore.Store
	extractor       *Extractor
}

func NewService(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	clusterRepo repository.ClusterRepository,
	store *modelstore.Store,
) SegmentationService {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		clusterRepo:     clusterRepo,
		store:           store,
	}
}

// ExtractFeatures exposes feature extraction for a raw transaction list.
func (s *Service) ExtractFeatures(transactions []*domain.Transaction) *domain.FeatureVector {
	return s.featureExtractor().Extract(transactions)
}

// Train fits the clustering model over every customer, persists the
// model bundle and replaces all segment assignments in one transaction.
func (s *Service) Train(ctx context.Context) (*domain.SegmentationTrainingResult, error) {
	users, err := s.userRepo.ListCustomers()
	if err != nil {
		return nil, NewSegmentationError(ErrFetchCustomers, err.Error())
	}

	if len(users) == 0 {
		return nil, NewSegmentationError(ErrNoCustomers, "segmentation training requires at least one customer")
	}

	vectors, err := s.extractAll(ctx, users)
	if err != nil {
		return nil, err
	}

	samples := make([][]float64, len(vectors))
	for i, fv := range vectors {
		samples[i] = fv.Values
	}

	scaler := ml.StandardScaler{}
	scaled := scaler.FitTransform(samples)

	km := ml.NewKMeans(clusterCount, kmeansSeed)
	labels := km.Fit(scaled)

	relabelByMonetaryRank(km, labels, vectors[0].Names)

	silhouette := ml.Silhouette(scaled, labels)

	assignments := make(map[int]int, len(users))
	for i, user := range users {
		assignments[user.ID] = labels[i]
	}

	// All assignments commit together; a failure rolls back the whole
	// batch and leaves the previous model bundle in place.
	if err := s.clusterRepo.ReplaceAssignments(ctx, clusterTable, assignments); err != nil {
		return nil, NewSegmentationError(ErrAssignmentUpdate, err.Error())
	}

	bundle := modelBundle{
		Scaler:      scaler,
		KMeans:      *km,
		FeatureKeys: vectors[0].Names,
	}
	if err := s.store.SaveGob(clusterModelArtifact, bundle); err != nil {
		return nil, NewSegmentationError(ErrModelPersistence, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"n_users":          len(users),
		"silhouette_score": silhouette,
	}).Info("Segmentation model trained")

	return &domain.SegmentationTrainingResult{
		SilhouetteScore: silhouette,
		ClusterCount:    clusterCount,
		UserCount:       len(users),
	}, nil
}

// Predict assigns a single user against the persisted model. When no
// model has been trained, it returns the default cluster without error.
func (s *Service) Predict(userID int) (int, error) {
	var bundle modelBundle
	if err := s.store.LoadGob(clusterModelArtifact, &bundle); err != nil {
		if errors.Is(err, modelstore.ErrNotFound) {
			return DefaultClusterIndex, nil
		}
		return 0, NewSegmentationError(ErrModelLoad, err.Error())
	}

	transactions, err := s.transactionRepo.ListByUser(userID)
	if err != nil {
		return 0, NewSegmentationError(ErrFetchTransactions, err.Error())
	}

	fv := s.featureExtractor().Extract(transactions)
	if !equalKeys(fv.Names, bundle.FeatureKeys) {
		return 0, NewSegmentationError(ErrSchemaMismatch,
			fmt.Sprintf("extracted %d keys, model expects %d", len(fv.Names), len(bundle.FeatureKeys)))
	}

	clusterIndex := bundle.KMeans.Predict(bundle.Scaler.Transform(fv.Values))

	if err := s.clusterRepo.SetUserCluster(userID, clusterIndex); err != nil {
		logrus.WithError(err).Warnf("Could not persist cluster assignment for user %d", userID)
	}

	return clusterIndex, nil
}

// Describe returns the fixed name and description for a cluster index.
func (s *Service) Describe(clusterIndex int) *domain.Cluster {
	for _, cluster := range clusterTable {
		if cluster.ID == clusterIndex {
			return cluster
		}
	}
	return &domain.Cluster{ID: clusterIndex, Name: "Unknown", Description: "No description available"}
}

func (s *Service) featureExtractor() *Extractor {
	if s.extractor != nil {
		return s.extractor
	}
	return NewExtractor()
}

func (s *Service) extractAll(ctx context.Context, users []*domain.User) ([]*domain.FeatureVector, error) {
	extractor := s.featureExtractor()
	vectors := make([]*domain.FeatureVector, len(users))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxExtractWorkers)

	for i, user := range users {
		i, user := i, user
		g.Go(func() error {
			transactions, err := s.transactionRepo.ListByUser(user.ID)
			if err != nil {
				return NewSegmentationError(ErrFetchTransactions,
					fmt.Sprintf("user %d: %v", user.ID, err))
			}
			vectors[i] = extractor.Extract(transactions)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return vectors, nil
}

// relabelByMonetaryRank rebinds raw partitioner labels to semantic
// cluster indices by ranking centroids on the monetary feature: the
// biggest spenders become High-Value Transactors (2), then Average
// Spenders (1), then Frugal Savers (0), and the lowest-activity cluster
// becomes New/Infrequent Users (3). Raw label identity is not stable
// across retrains, centroid characteristics are.
func relabelByMonetaryRank(km *ml.KMeans, labels []int, featureKeys []string) {
	monetaryPos := 0
	for i, key := range featureKeys {
		if key == "monetary" {
			monetaryPos = i
			break
		}
	}

	order := make([]int, len(km.Centroids))
	for i := range order {
		order[i] = i
	}
	// Descending by standardized monetary centroid; standardization is
	// monotonic per feature, so the ordering matches raw spending.
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if km.Centroids[order[j]][monetaryPos] > km.Centroids[order[i]][monetaryPos] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	semanticByRank := []int{2, 1, 0, 3}
	mapping := make([]int, len(order))
	for rank, rawLabel := range order {
		mapping[rawLabel] = semanticByRank[rank]
	}

	remapped := make([][]float64, len(km.Centroids))
	for rawLabel, centroid := range km.Centroids {
		remapped[mapping[rawLabel]] = centroid
	}
	km.Centroids = remapped

	for i, l := range labels {
		labels[i] = mapping[l]
	}
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
