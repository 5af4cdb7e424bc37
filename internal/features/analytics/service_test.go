package analytics_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/features/analytics"
	"seedcare/internal/features/complaint"
	"seedcare/internal/features/complaint/complainttest"
	"seedcare/internal/features/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newService(complaints ...complaint.Complaint) *analytics.AnalyticsServiceImpl {
	store := complainttest.NewComplaintStore()
	for i := range complaints {
		store.Seed(&complaints[i])
	}
	return &analytics.AnalyticsServiceImpl{
		ComplaintRepo: store,
		StaffRepo: complainttest.NewStaffStore(staff.Profile{
			UserID: "s-1", FullName: "Sari", IsActive: true, MaxAssignedComplaints: 5,
		}),
		Log: zap.NewNop(),
		Now: func() time.Time { return now },
	}
}

func TestGetReport(t *testing.T) {
	recent := newComplaint(at(3, 8), complaint.StatusSubmitted, complaint.PriorityMedium)
	recent.ComplaintNumber = "CMP-20240328-0001"
	older := newComplaint(at(20, 8), complaint.StatusResolved, complaint.PriorityMedium)
	older.ComplaintNumber = "CMP-20240311-0001"
	svc := newService(recent, older)

	report, err := svc.GetReport(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, report.PeriodDays)
	assert.Equal(t, 1, report.Summary.Total)
	require.Len(t, report.Team, 1)

	report, err = svc.GetReport(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultPeriodDays, report.PeriodDays)
	assert.Equal(t, 2, report.Summary.Total)
}

func TestGetReportRejectsBadPeriod(t *testing.T) {
	svc := newService()
	for _, days := range []int{-1, analytics.MaxPeriodDays + 1} {
		_, err := svc.GetReport(context.Background(), days)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	}
}

func TestExportReport(t *testing.T) {
	c := newComplaint(at(1, 8), complaint.StatusSubmitted, complaint.PriorityHigh)
	c.ComplaintNumber = "CMP-20240330-0001"
	svc := newService(c)

	data, filename, err := svc.ExportReport(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, "complaint-analytics-20240331.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		analytics.SheetSummary, analytics.SheetTrend, analytics.SheetTeam, analytics.SheetDistribution,
	}, f.GetSheetList())

	total, err := f.GetCellValue(analytics.SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "1", total)

	day, err := f.GetCellValue(analytics.SheetTrend, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-30", day)

	name, err := f.GetCellValue(analytics.SheetTeam, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Sari", name)
}
