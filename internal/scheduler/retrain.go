package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/fincoach/fincoach-core/infrastructure/repository"
	"github.com/fincoach/fincoach-core/internal/config"
	"github.com/fincoach/fincoach-core/internal/usecases/forecasting"
	"github.com/fincoach/fincoach-core/internal/usecases/recommending"
	"github.com/fincoach/fincoach-core/internal/usecases/segmenting"
)

// RetrainConfig holds the scheduling knobs for the nightly retrain job.
type RetrainConfig struct {
	CronSchedule string
	Enabled      bool
}

// RetrainService runs the full model refresh on a cron schedule:
// segmentation, per-user forecasts and the product index, in that order.
type RetrainService struct {
	scheduler          *gocron.Scheduler
	config             RetrainConfig
	userRepo           repository.UserRepository
	segmentation       segmenting.SegmentationService
	forecast           forecasting.ForecastService
	recommendation     recommending.RecommendationService
	retrainRunning     bool
	retrainMutex       sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

func NewRetrainService(
	userRepo repository.UserRepository,
	segmentation segmenting.SegmentationService,
	forecast forecasting.ForecastService,
	recommendation recommending.RecommendationService,
	appConfig *config.Config,
) *RetrainService {
	retrainConfig := RetrainConfig{
		CronSchedule: appConfig.Retrain.CronSchedule,
		Enabled:      appConfig.Retrain.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": retrainConfig.CronSchedule,
		"enabled":       retrainConfig.Enabled,
	}).Info("Model retrain scheduler configuration loaded")

	return &RetrainService{
		scheduler:      gocron.NewScheduler(time.Local),
		config:         retrainConfig,
		userRepo:       userRepo,
		segmentation:   segmentation,
		forecast:       forecast,
		recommendation: recommendation,
	}
}

// Start registers the cron job and runs the scheduler until ctx is done.
func (s *RetrainService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Scheduled model retraining disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting model retrain scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunRetrain(ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling model retraining: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping model retrain scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunRetrain executes one full retraining pass. Overlapping runs are
// skipped rather than queued. Every stage is best-effort: a failed stage
// is logged and the remaining stages still run, so one bad model does
// not block the others from refreshing.
func (s *RetrainService) RunRetrain(ctx context.Context) {
	s.retrainMutex.Lock()
	if s.retrainRunning {
		s.retrainMutex.Unlock()
		logrus.Info("Model retraining already in progress, skipping")
		return
	}
	s.retrainRunning = true
	s.retrainMutex.Unlock()

	startTime := time.Now()
	s.lastRunStartedAt = startTime

	defer func() {
		s.retrainMutex.Lock()
		s.retrainRunning = false
		s.retrainMutex.Unlock()
	}()

	logrus.Info("Starting full model retraining pass")

	s.retrainSegmentation(ctx)
	trained, skipped := s.retrainForecasts()
	s.rebuildProductIndex()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":          duration.String(),
		"forecasts_trained": trained,
		"forecasts_skipped": skipped,
	}).Info("Model retraining pass completed")

	s.lastRunCompletedAt = time.Now()
}

func (s *RetrainService) retrainSegmentation(ctx context.Context) {
	result, err := s.segmentation.Train(ctx)
	if err != nil {
		logrus.WithError(err).Error("Segmentation retraining failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"n_clusters":       result.ClusterCount,
		"n_users":          result.UserCount,
		"silhouette_score": result.SilhouetteScore,
	}).Info("Segmentation model retrained")
}

// retrainForecasts refits the balance model for every customer. Users
// without enough history are expected and counted, not treated as
// failures.
func (s *RetrainService) retrainForecasts() (trained, skipped int) {
	customers, err := s.userRepo.ListCustomers()
	if err != nil {
		logrus.WithError(err).Error("Error fetching customers for forecast retraining")
		return 0, 0
	}

	for _, customer := range customers {
		if _, err := s.forecast.Train(customer.ID); err != nil {
			if errors.Is(err, forecasting.ErrInsufficientHistory) {
				skipped++
				continue
			}
			logrus.WithError(err).Warnf("Forecast retraining failed for user %d", customer.ID)
			skipped++
			continue
		}
		trained++
	}

	logrus.WithFields(logrus.Fields{
		"trained": trained,
		"skipped": skipped,
	}).Info("Per-user forecast models retrained")

	return trained, skipped
}

func (s *RetrainService) rebuildProductIndex() {
	result, err := s.recommendation.RebuildIndex()
	if err != nil {
		logrus.WithError(err).Error("Product index rebuild failed")
		return
	}

	logrus.WithField("n_products", result.ProductCount).Info("Product index rebuilt")
}
