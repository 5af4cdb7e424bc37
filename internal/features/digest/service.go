package digest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seedcare/internal/config"
	"seedcare/internal/features/analytics"
	"seedcare/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"

	runTimeout = 5 * time.Minute
)

// DigestService stores a periodic analytics snapshot on a cron schedule
type DigestService interface {
	Run(ctx context.Context, trigger string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int64) ([]Snapshot, error)
	Start() error
	Stop()
}

type DigestServiceImpl struct {
	repo       SnapshotRepository
	analytics  analytics.AnalyticsService
	schedule   string
	periodDays int
	log        *zap.Logger

	mu        sync.Mutex
	scheduler *cron.Cron
}

func NewDigestService(repo SnapshotRepository, analyticsService analytics.AnalyticsService, cfg *config.Config, log *zap.Logger) DigestService {
	periodDays := cfg.DigestPeriodDays
	if periodDays <= 0 {
		periodDays = analytics.DefaultPeriodDays
	}
	return &DigestServiceImpl{
		repo:       repo,
		analytics:  analyticsService,
		schedule:   cfg.DigestSchedule,
		periodDays: periodDays,
		log:        log,
	}
}

// Run computes the report and stores it. A failed computation is stored too,
// so gaps in the snapshot history can be explained.
func (s *DigestServiceImpl) Run(ctx context.Context, trigger string) (*Snapshot, error) {
	snapshot := &Snapshot{
		PeriodDays: s.periodDays,
		Trigger:    trigger,
		StartedAt:  time.Now(),
	}

	report, runErr := s.analytics.GetReport(ctx, s.periodDays)
	snapshot.FinishedAt = time.Now()
	if runErr != nil {
		snapshot.Status = RunFailed
		snapshot.Error = runErr.Error()
	} else {
		snapshot.Status = RunSuccess
		snapshot.Report = report
	}
	metrics.DigestRuns.WithLabelValues(string(snapshot.Status)).Inc()

	if err := s.repo.Create(ctx, snapshot); err != nil {
		s.log.Error("Failed to store analytics snapshot", zap.String("trigger", trigger), zap.Error(err))
		return nil, err
	}
	if runErr != nil {
		s.log.Error("Analytics digest failed", zap.String("trigger", trigger), zap.Error(runErr))
		return snapshot, runErr
	}

	s.log.Info("Analytics digest stored",
		zap.String("snapshot_id", snapshot.ID.Hex()),
		zap.String("trigger", trigger),
		zap.Int("complaints", report.Summary.Total))
	return snapshot, nil
}

func (s *DigestServiceImpl) ListSnapshots(ctx context.Context, limit int64) ([]Snapshot, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.repo.List(ctx, limit)
}

// Start registers the digest job. An empty schedule disables it.
func (s *DigestServiceImpl) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.log.Info("Analytics digest disabled")
		return nil
	}
	if s.scheduler != nil {
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_, _ = s.Run(ctx, TriggerSchedule)
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", s.schedule, err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	s.log.Info("Analytics digest scheduled", zap.String("schedule", s.schedule), zap.Int("period_days", s.periodDays))
	return nil
}

func (s *DigestServiceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
		s.scheduler = nil
	}
}
