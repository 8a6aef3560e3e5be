package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/config"
	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
	"github.com/Diaealaoui/agrimanager-sub000/internal/repository/mongodb"
	"github.com/Diaealaoui/agrimanager-sub000/internal/service/dashboard"
	"github.com/Diaealaoui/agrimanager-sub000/pkg/clients/notifier"
)

// Scheduler manages the recurring monthly snapshot job.
type Scheduler struct {
	cron         *cron.Cron
	dashboardSvc *dashboard.Service
	snapshots    mongodb.SnapshotRepository
	notifier     notifier.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil.
func NewScheduler(cfg config.Config, dashboardSvc *dashboard.Service, snapshots mongodb.SnapshotRepository, notifierClient notifier.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Scheduler.Timezone))
		location = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		dashboardSvc: dashboardSvc,
		snapshots:    snapshots,
		notifier:     notifierClient,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and launches the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Scheduler.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.CronSchedule, s.captureMonthlySnapshot); err != nil {
		s.logger.Error("failed to schedule monthly snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) captureMonthlySnapshot() {
	s.logger.Info("capturing monthly snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The job runs early in the new month and summarizes the month before.
	previous := time.Now().AddDate(0, -1, 0)
	year, month := previous.Year(), int(previous.Month())

	summary, err := s.dashboardSvc.Summarize(ctx, year, 1)
	if err != nil {
		s.logger.Error("failed to derive monthly snapshot", zap.Error(err))
		return
	}

	bucket := summary.Series.Buckets[month-1]
	snapshot := models.MonthlySnapshot{
		Year:        year,
		Month:       month,
		TotalAmount: bucket.TotalAmount,
		OrderCount:  bucket.OrderCount,
		CreatedAt:   time.Now().UTC(),
	}
	if len(summary.TopProducts) > 0 {
		snapshot.TopProduct = summary.TopProducts[0].Key
	}

	if err := s.snapshots.Insert(ctx, snapshot); err != nil {
		s.logger.Error("failed to persist monthly snapshot", zap.Error(err))
		return
	}

	s.sendDigest(ctx, snapshot)
}

func (s *Scheduler) sendDigest(ctx context.Context, snapshot models.MonthlySnapshot) {
	if s.notifier == nil {
		return
	}

	text := fmt.Sprintf("Spend %04d-%02d: %.2f across %d purchases.",
		snapshot.Year, snapshot.Month, snapshot.TotalAmount, snapshot.OrderCount)
	if snapshot.TopProduct != "" {
		text += fmt.Sprintf(" Top product: %s.", snapshot.TopProduct)
	}

	if _, err := s.notifier.SendMessage(ctx, notifier.MessageRequest{
		Title: "Monthly purchase digest",
		Text:  text,
	}); err != nil {
		s.logger.Error("failed to send monthly digest", zap.Error(err))
	} else {
		s.logger.Info("monthly digest sent", zap.Int("year", snapshot.Year), zap.Int("month", snapshot.Month))
	}
}
