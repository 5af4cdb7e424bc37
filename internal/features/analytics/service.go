package analytics

import (
	"context"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/features/complaint"
	"seedcare/internal/features/staff"
	"seedcare/pkg/metrics"

	"go.uber.org/zap"
)

type AnalyticsService interface {
	GetReport(ctx context.Context, periodDays int) (*Report, error)
	ExportReport(ctx context.Context, periodDays int) ([]byte, string, error)
}

type AnalyticsServiceImpl struct {
	ComplaintRepo complaint.ComplaintRepository
	StaffRepo     staff.StaffRepository
	Log           *zap.Logger
	Now           func() time.Time
}

func NewAnalyticsService(complaintRepo complaint.ComplaintRepository, staffRepo staff.StaffRepository, log *zap.Logger) AnalyticsService {
	return &AnalyticsServiceImpl{
		ComplaintRepo: complaintRepo,
		StaffRepo:     staffRepo,
		Log:           log,
		Now:           time.Now,
	}
}

// GetReport loads the period's complaints and the active staff and aggregates them.
// A zero period means the default 30 days.
func (s *AnalyticsServiceImpl) GetReport(ctx context.Context, periodDays int) (*Report, error) {
	if periodDays == 0 {
		periodDays = DefaultPeriodDays
	}
	if periodDays < 1 || periodDays > MaxPeriodDays {
		return nil, apperror.Validation("period_days must be between 1 and %d", MaxPeriodDays)
	}

	started := time.Now()
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	complaints, err := s.ComplaintRepo.FindCreatedBetween(ctx, now.AddDate(0, 0, -periodDays), now)
	if err != nil {
		return nil, err
	}
	profiles, err := s.StaffRepo.List(ctx, staff.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	report := Compute(complaints, profiles, now, periodDays)
	metrics.AnalyticsComputeDuration.Observe(time.Since(started).Seconds())

	s.Log.Debug("Analytics report computed",
		zap.Int("period_days", periodDays),
		zap.Int("complaints", report.Summary.Total),
		zap.Duration("took", time.Since(started)))
	return &report, nil
}

func (s *AnalyticsServiceImpl) ExportReport(ctx context.Context, periodDays int) ([]byte, string, error) {
	report, err := s.GetReport(ctx, periodDays)
	if err != nil {
		return nil, "", err
	}
	data, err := ExportToExcel(report)
	if err != nil {
		return nil, "", err
	}
	filename := "complaint-analytics-" + report.To.Format("20060102") + ".xlsx"
	return data, filename, nil
}
