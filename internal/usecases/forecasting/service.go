package forecasting

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fincoach/fincoach-core/infrastructure/modelstore"
	"github.com/fincoach/fincoach-core/infrastructure/repository"
	"github.com/fincoach/fincoach-core/internal/domain"
	"github.com/fincoach/fincoach-core/internal/ml"
	"github.com/fincoach/fincoach-core/pkg/utils"
)

const (
	// DefaultHorizonDays is the forecast length when the caller does not
	// specify one.
	DefaultHorizonDays = 30

	minObservedDays = 7

	holtAlpha = 0.8
	holtBeta  = 0.2
)

// forecastArtifact is the persisted per-user model: the fitted smoother
// plus the series metadata needed to anchor future projections.
type forecastArtifact struct {
	Model      ml.HoltModel
	LastDate   time.Time
	DataPoints int
}

func artifactName(userID int) string {
	return fmt.Sprintf("forecast_user_%d.gob", userID)
}

type ForecastService interface {
	Train(userID int) (*domain.ForecastTrainingResult, error)
	Generate(userID int, horizonDays int) (*domain.Forecast, error)
}

type Service struct {
	transactionRepo repository.TransactionRepository
	store           *modelstore.Store
}

func NewService(
	transactionRepo repository.TransactionRepository,
	store *modelstore.Store,
) ForecastService {
	return &Service{
		transactionRepo: transactionRepo,
		store:           store,
	}
}

// Train fits and persists the balance smoother for one user. Users with
// fewer than seven distinct days of balance history cannot be trained.
func (s *Service) Train(userID int) (*domain.ForecastTrainingResult, error) {
	series, err := s.buildSeries(userID)
	if err != nil {
		return nil, err
	}

	if series == nil || series.ObservedDays < minObservedDays {
		return nil, NewForecastError(ErrInsufficientHistory, userID,
			fmt.Sprintf("need %d distinct days of balance history", minObservedDays))
	}

	model := ml.FitHolt(series.Values, holtAlpha, holtBeta)

	artifact := forecastArtifact{
		Model:      *model,
		LastDate:   series.End(),
		DataPoints: len(series.Values),
	}
	if err := s.store.SaveGob(artifactName(userID), artifact); err != nil {
		return nil, NewForecastError(ErrModelPersistence, userID, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"data_points": artifact.DataPoints,
	}).Debug("Forecast model trained")

	return &domain.ForecastTrainingResult{
		Status:     "success",
		DataPoints: artifact.DataPoints,
		DateRange:  fmt.Sprintf("%s to %s", series.Start().Format(time.DateOnly), series.End().Format(time.DateOnly)),
	}, nil
}

// Generate projects the user's balance horizonDays past the last
// observed day using the persisted model. A missing model is a hard
// error for forecasting.
func (s *Service) Generate(userID int, horizonDays int) (*domain.Forecast, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	var artifact forecastArtifact
	if err := s.store.LoadGob(artifactName(userID), &artifact); err != nil {
		if errors.Is(err, modelstore.ErrNotFound) {
			return nil, NewForecastError(ErrModelNotTrained, userID, "")
		}
		return nil, NewForecastError(ErrModelLoad, userID, err.Error())
	}

	series, err := s.buildSeries(userID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, NewForecastError(ErrNoTransactions, userID, "")
	}

	values := artifact.Model.Forecast(horizonDays)
	dates := make([]string, horizonDays)
	for i := range values {
		values[i] = utils.RoundWithTwoDecimalPlace(values[i])
		dates[i] = series.End().AddDate(0, 0, i+1).Format(time.DateOnly)
	}

	current := utils.RoundWithTwoDecimalPlace(series.Current())
	final := values[len(values)-1]

	// Strict comparison: a flat projection classifies as decreasing
	trend := domain.TrendDecreasing
	if final > current {
		trend = domain.TrendIncreasing
	}

	return &domain.Forecast{
		Dates:            dates,
		Values:           values,
		CurrentBalance:   current,
		PredictedBalance: final,
		Trend:            trend,
		Summary:          buildSummary(current, final, values, trend, horizonDays),
	}, nil
}

func (s *Service) buildSeries(userID int) (*BalanceSeries, error) {
	transactions, err := s.transactionRepo.ListByUser(userID)
	if err != nil {
		return nil, NewForecastError(ErrFetchTransactions, userID, err.Error())
	}
	return BuildBalanceSeries(transactions), nil
}
