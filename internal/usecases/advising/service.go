package advising

import (
	"github.com/sirupsen/logrus"

	"github.com/fincoach/fincoach-core/infrastructure/repository"
	"github.com/fincoach/fincoach-core/internal/domain"
	"github.com/fincoach/fincoach-core/internal/usecases/forecasting"
	"github.com/fincoach/fincoach-core/internal/usecases/recommending"
	"github.com/fincoach/fincoach-core/internal/usecases/segmenting"
)

const (
	recentTransactionLimit = 100
	recommendationLimit    = 5

	noForecastSummary = "No forecast available"
)

// AdvisingService assembles the full intelligence view for one user:
// segment, recent activity, balance forecast and product suggestions.
type AdvisingService interface {
	GetUserContext(userID int) (*domain.UserContext, error)
}

type Service struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	segmentation    segmenting.SegmentationService
	forecast        forecasting.ForecastService
	recommendation  recommending.RecommendationService
}

func NewService(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	segmentation segmenting.SegmentationService,
	forecast forecasting.ForecastService,
	recommendation recommending.RecommendationService,
) AdvisingService {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		segmentation:    segmentation,
		forecast:        forecast,
		recommendation:  recommendation,
	}
}

// GetUserContext composes the per-user view. Only the user lookup is a
// hard dependency; every model-backed section degrades independently so
// a missing artifact never blanks the whole context.
func (s *Service) GetUserContext(userID int) (*domain.UserContext, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, NewAdvisingError(ErrFetchUser, userID)
	}
	if user == nil {
		return nil, NewAdvisingError(ErrUserNotFound, userID)
	}

	clusterIndex, err := s.segmentation.Predict(userID)
	if err != nil {
		logrus.Warnf("Segment prediction failed for user %d, using default cluster: %v", userID, err)
		clusterIndex = segmenting.DefaultClusterIndex
	}
	cluster := s.segmentation.Describe(clusterIndex)

	transactions, err := s.transactionRepo.ListByUser(userID)
	if err != nil {
		return nil, NewAdvisingError(ErrFetchTransactions, userID)
	}
	if len(transactions) > recentTransactionLimit {
		transactions = transactions[len(transactions)-recentTransactionLimit:]
	}

	forecast, err := s.forecast.Generate(userID, 0)
	if err != nil {
		logrus.Debugf("No forecast for user %d: %v", userID, err)
		forecast = &domain.Forecast{Summary: noForecastSummary}
	}

	recommendations, err := s.recommendation.Recommend(userID, cluster.Name, forecast.Summary, recommendationLimit)
	if err != nil {
		logrus.Warnf("Recommendation lookup failed for user %d: %v", userID, err)
		recommendations = []*domain.Recommendation{}
	}

	return &domain.UserContext{
		User:            user,
		Cluster:         cluster,
		Transactions:    transactions,
		Forecast:        forecast,
		Recommendations: recommendations,
	}, nil
}
