package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/fincoach/fincoach-core/infrastructure/database/postgres"
	"github.com/fincoach/fincoach-core/infrastructure/modelstore"
	"github.com/fincoach/fincoach-core/infrastructure/repository"
	"github.com/fincoach/fincoach-core/internal/config"
	"github.com/fincoach/fincoach-core/internal/domain"
	"github.com/fincoach/fincoach-core/internal/scheduler"
	"github.com/fincoach/fincoach-core/internal/usecases/forecasting"
	"github.com/fincoach/fincoach-core/internal/usecases/recommending"
	"github.com/fincoach/fincoach-core/internal/usecases/segmenting"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// runReport is the JSON summary emitted after a one-shot training run.
type runReport struct {
	RunID             string                             `json:"run_id"`
	StartedAt         string                             `json:"started_at"`
	Duration          string                             `json:"duration"`
	Segmentation      *domain.SegmentationTrainingResult `json:"segmentation,omitempty"`
	SegmentationError string                             `json:"segmentation_error,omitempty"`
	ForecastsTrained  int                                `json:"forecasts_trained"`
	ForecastsSkipped  int                                `json:"forecasts_skipped"`
	Index             *domain.IndexRebuildResult         `json:"index,omitempty"`
	IndexError        string                             `json:"index_error,omitempty"`
}

func main() {
	schedule := flag.Bool("schedule", false, "run the retraining scheduler instead of a one-shot training pass")
	flag.Parse()

	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level %q, falling back to info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	store, err := modelstore.New(cfg.Models.Dir)
	if err != nil {
		logrus.WithError(err).Fatal("Error preparing model artifact directory")
	}

	userRepo := repository.NewUserRepository(pgConn)
	transactionRepo := repository.NewTransactionRepository(pgConn)
	clusterRepo := repository.NewClusterRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)

	segmentationService := segmenting.NewService(userRepo, transactionRepo, clusterRepo, store)
	forecastService := forecasting.NewService(transactionRepo, store)
	recommendationService := recommending.NewService(productRepo, store)

	if *schedule {
		retrainService := scheduler.NewRetrainService(
			userRepo,
			segmentationService,
			forecastService,
			recommendationService,
			cfg,
		)
		if err := retrainService.Start(ctx); err != nil {
			logrus.WithError(err).Fatal("Error starting retrain scheduler")
		}

		logrus.Info("Retrain scheduler running, waiting for shutdown signal")
		<-ctx.Done()
		return
	}

	report := trainOnce(ctx, userRepo, segmentationService, forecastService, recommendationService)

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatal("Error encoding training report")
	}
	fmt.Println(string(encoded))
}

// trainOnce runs the three training stages sequentially and collects
// their outcomes. Stage failures land in the report instead of aborting
// the run.
func trainOnce(
	ctx context.Context,
	userRepo repository.UserRepository,
	segmentationService segmenting.SegmentationService,
	forecastService forecasting.ForecastService,
	recommendationService recommending.RecommendationService,
) *runReport {
	startedAt := time.Now()
	report := &runReport{
		RunID:     uuid.NewString(),
		StartedAt: startedAt.Format(time.RFC3339),
	}
	runLog := logrus.WithField("run_id", report.RunID)

	runLog.Info("Starting one-shot training run")

	segmentation, err := segmentationService.Train(ctx)
	if err != nil {
		runLog.WithError(err).Error("Segmentation training failed")
		report.SegmentationError = err.Error()
	} else {
		report.Segmentation = segmentation
	}

	customers, err := userRepo.ListCustomers()
	if err != nil {
		runLog.WithError(err).Error("Error fetching customers for forecast training")
	}
	for _, customer := range customers {
		if _, err := forecastService.Train(customer.ID); err != nil {
			if !errors.Is(err, forecasting.ErrInsufficientHistory) {
				runLog.WithError(err).Warnf("Forecast training failed for user %d", customer.ID)
			}
			report.ForecastsSkipped++
			continue
		}
		report.ForecastsTrained++
	}

	index, err := recommendationService.RebuildIndex()
	if err != nil {
		runLog.WithError(err).Error("Product index rebuild failed")
		report.IndexError = err.Error()
	} else {
		report.Index = index
	}

	report.Duration = time.Since(startedAt).String()
	runLog.WithField("duration", report.Duration).Info("Training run completed")

	return report
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Error connecting to PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Error checking PostgreSQL connection")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
