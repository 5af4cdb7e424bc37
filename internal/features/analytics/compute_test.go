package analytics_test

import (
	"testing"
	"time"

	"seedcare/internal/features/analytics"
	"seedcare/internal/features/complaint"
	"seedcare/internal/features/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

func at(daysAgo int, hour int) time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func after(t time.Time, hours float64) *time.Time {
	v := t.Add(time.Duration(hours * float64(time.Hour)))
	return &v
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func newComplaint(created time.Time, status complaint.Status, priority complaint.Priority) complaint.Complaint {
	return complaint.Complaint{
		Status:           status,
		Priority:         priority,
		Department:       "customer_service",
		CreatedAt:        created,
		FirstResponseSLA: "24:00:00",
		ResolutionSLA:    "48:00:00",
	}
}

func TestComputeEmpty(t *testing.T) {
	r := analytics.Compute(nil, nil, now, 30)

	assert.Zero(t, r.Summary.Total)
	assert.Zero(t, r.Summary.ResolutionRate)
	assert.Zero(t, r.Summary.AvgResolutionHours)
	assert.Zero(t, r.Summary.AvgFirstResponseHours)
	assert.Zero(t, r.Summary.EscalationRate)
	assert.Equal(t, 100, r.SLA.FirstResponse.Compliance)
	assert.Equal(t, 100, r.SLA.Resolution.Compliance)
	assert.Zero(t, r.Satisfaction.Average)
	assert.Len(t, r.Satisfaction.Distribution, 5)
	assert.Empty(t, r.Trend)
	assert.Empty(t, r.ResponseTimeByPriority)
	assert.Empty(t, r.Products.TopProducts)
	assert.Zero(t, r.Assignment.AvgTimeToAssignHours)
	assert.True(t, r.From.Equal(now.AddDate(0, 0, -30)))
}

func TestComputeCounts(t *testing.T) {
	resolved := newComplaint(at(3, 8), complaint.StatusResolved, complaint.PriorityHigh)
	resolved.ResolvedAt = after(resolved.CreatedAt, 10)
	closed := newComplaint(at(3, 9), complaint.StatusClosed, complaint.PriorityLow)
	closed.ResolvedAt = after(closed.CreatedAt, 20)
	open := newComplaint(at(2, 9), complaint.StatusInvestigation, complaint.PriorityMedium)
	open.Escalated = true

	r := analytics.Compute([]complaint.Complaint{resolved, closed, open}, nil, now, 30)

	assert.Equal(t, 3, r.Summary.Total)
	assert.Equal(t, 2, r.Summary.Resolved)
	assert.Equal(t, 1, r.Summary.Pending)
	assert.Equal(t, 67, r.Summary.ResolutionRate)
	assert.Equal(t, 1, r.Summary.Escalated)
	assert.Equal(t, 33, r.Summary.EscalationRate)
	assert.Equal(t, 15.0, r.Summary.AvgResolutionHours)
}

func TestComputeIgnoresComplaintsOutsidePeriod(t *testing.T) {
	old := newComplaint(now.AddDate(0, 0, -31), complaint.StatusSubmitted, complaint.PriorityLow)
	future := newComplaint(now.Add(time.Hour), complaint.StatusSubmitted, complaint.PriorityLow)
	edge := newComplaint(now.AddDate(0, 0, -30), complaint.StatusSubmitted, complaint.PriorityLow)

	r := analytics.Compute([]complaint.Complaint{old, future, edge}, nil, now, 30)
	assert.Equal(t, 1, r.Summary.Total)
}

func TestComputeDurationsRoundToOneDecimal(t *testing.T) {
	a := newComplaint(at(1, 8), complaint.StatusAcknowledged, complaint.PriorityMedium)
	a.FirstResponseAt = after(a.CreatedAt, 1)
	b := newComplaint(at(1, 9), complaint.StatusAcknowledged, complaint.PriorityMedium)
	b.FirstResponseAt = after(b.CreatedAt, 2)
	c := newComplaint(at(1, 10), complaint.StatusAcknowledged, complaint.PriorityMedium)
	c.FirstResponseAt = after(c.CreatedAt, 2)

	r := analytics.Compute([]complaint.Complaint{a, b, c}, nil, now, 30)
	assert.Equal(t, 1.7, r.Summary.AvgFirstResponseHours)
}

func TestComputeSLACompliance(t *testing.T) {
	fast := newComplaint(at(5, 8), complaint.StatusResolved, complaint.PriorityMedium)
	fast.FirstResponseAt = after(fast.CreatedAt, 2)
	fast.ResolvedAt = after(fast.CreatedAt, 47)

	slow := newComplaint(at(5, 9), complaint.StatusResolved, complaint.PriorityMedium)
	slow.FirstResponseAt = after(slow.CreatedAt, 30)
	slow.ResolvedAt = after(slow.CreatedAt, 49)

	exact := newComplaint(at(5, 10), complaint.StatusResolved, complaint.PriorityMedium)
	exact.ResolvedAt = after(exact.CreatedAt, 48)

	noTarget := newComplaint(at(5, 11), complaint.StatusResolved, complaint.PriorityMedium)
	noTarget.ResolutionSLA = ""
	noTarget.ResolvedAt = after(noTarget.CreatedAt, 500)

	pending := newComplaint(at(5, 12), complaint.StatusSubmitted, complaint.PriorityMedium)

	r := analytics.Compute([]complaint.Complaint{fast, slow, exact, noTarget, pending}, nil, now, 30)

	assert.Equal(t, analytics.SLAStat{WithData: 2, Breaches: 1, Compliance: 50}, r.SLA.FirstResponse)
	assert.Equal(t, analytics.SLAStat{WithData: 3, Breaches: 1, Compliance: 67}, r.SLA.Resolution)
}

func TestComputeSatisfaction(t *testing.T) {
	var complaints []complaint.Complaint
	for _, rating := range []int{5, 4, 4, 1} {
		c := newComplaint(at(1, 8), complaint.StatusResolved, complaint.PriorityMedium)
		c.CustomerSatisfactionRating = intPtr(rating)
		complaints = append(complaints, c)
	}
	complaints = append(complaints, newComplaint(at(1, 9), complaint.StatusResolved, complaint.PriorityMedium))

	r := analytics.Compute(complaints, nil, now, 30)
	assert.Equal(t, 3.5, r.Satisfaction.Average)
	assert.Equal(t, 4, r.Satisfaction.Rated)
	assert.Equal(t, []analytics.RatingBucket{
		{Rating: 1, Count: 1},
		{Rating: 2, Count: 0},
		{Rating: 3, Count: 0},
		{Rating: 4, Count: 2},
		{Rating: 5, Count: 1},
	}, r.Satisfaction.Distribution)
}

func TestComputeDistributions(t *testing.T) {
	a := newComplaint(at(1, 8), complaint.StatusSubmitted, complaint.PriorityHigh)
	a.ComplaintType = "germination"
	b := newComplaint(at(1, 9), complaint.StatusSubmitted, complaint.PriorityHigh)
	b.Department = ""
	c := newComplaint(at(1, 10), complaint.StatusResolved, complaint.PriorityLow)
	c.Department = "observasi"
	c.ComplaintType = "germination"

	r := analytics.Compute([]complaint.Complaint{a, b, c}, nil, now, 30)
	assert.Equal(t, map[string]int{"submitted": 2, "resolved": 1}, r.Distribution.ByStatus)
	assert.Equal(t, map[string]int{"high": 2, "low": 1}, r.Distribution.ByPriority)
	assert.Equal(t, map[string]int{"customer_service": 1, "unassigned": 1, "observasi": 1}, r.Distribution.ByDepartment)
	assert.Equal(t, map[string]int{"germination": 2, "unspecified": 1}, r.Distribution.ByComplaintType)
}

func TestComputeTopProducts(t *testing.T) {
	names := []string{"BISI-2", "BISI-18", "BISI-2", "P21", "NK7328", "P21", "BISI-99", "PIONEER-X", "BISI-18", ""}
	var complaints []complaint.Complaint
	for i, name := range names {
		c := newComplaint(at(1, 8), complaint.StatusSubmitted, complaint.PriorityMedium)
		c.RelatedProductName = name
		if i%2 == 0 {
			c.RelatedProductSerial = "SN-" + name
		}
		complaints = append(complaints, c)
	}

	r := analytics.Compute(complaints, nil, now, 30)
	assert.Equal(t, 50, r.Products.WithSerialPct)
	assert.Equal(t, []analytics.ProductCount{
		{Name: "BISI-2", Count: 2},
		{Name: "BISI-18", Count: 2},
		{Name: "P21", Count: 2},
		{Name: "NK7328", Count: 1},
		{Name: "BISI-99", Count: 1},
	}, r.Products.TopProducts)
}

func TestComputeTrend(t *testing.T) {
	a := newComplaint(at(2, 23), complaint.StatusResolved, complaint.PriorityCritical)
	b := newComplaint(at(2, 1), complaint.StatusSubmitted, complaint.PriorityMedium)
	b.Escalated = true
	c := newComplaint(at(5, 10), complaint.StatusSubmitted, complaint.PriorityCritical)

	r := analytics.Compute([]complaint.Complaint{a, b, c}, nil, now, 30)
	require.Len(t, r.Trend, 2)
	assert.Equal(t, analytics.TrendPoint{Date: "2024-03-26", Total: 1, Pending: 1, Critical: 1}, r.Trend[0])
	assert.Equal(t, analytics.TrendPoint{Date: "2024-03-29", Total: 2, Resolved: 1, Pending: 1, Escalated: 1, Critical: 1}, r.Trend[1])
}

func TestComputeAssignment(t *testing.T) {
	a := newComplaint(at(1, 8), complaint.StatusAcknowledged, complaint.PriorityMedium)
	a.AssignedTo = strPtr("s-1")
	a.AssignedAt = after(a.CreatedAt, 3)
	b := newComplaint(at(1, 9), complaint.StatusAcknowledged, complaint.PriorityMedium)
	b.AssignedTo = strPtr("s-2")
	b.AssignedAt = after(b.CreatedAt, 4)
	c := newComplaint(at(1, 10), complaint.StatusSubmitted, complaint.PriorityMedium)

	r := analytics.Compute([]complaint.Complaint{a, b, c}, nil, now, 30)
	assert.Equal(t, 2, r.Assignment.Assigned)
	assert.Equal(t, 1, r.Assignment.Unassigned)
	assert.Equal(t, 3.5, r.Assignment.AvgTimeToAssignHours)
}

func TestComputeResponseTimeByPriority(t *testing.T) {
	crit := newComplaint(at(1, 8), complaint.StatusAcknowledged, complaint.PriorityCritical)
	crit.FirstResponseAt = after(crit.CreatedAt, 1)
	low := newComplaint(at(1, 9), complaint.StatusAcknowledged, complaint.PriorityLow)
	low.FirstResponseAt = after(low.CreatedAt, 10)
	high := newComplaint(at(1, 10), complaint.StatusSubmitted, complaint.PriorityHigh)

	r := analytics.Compute([]complaint.Complaint{low, crit, high}, nil, now, 30)
	assert.Equal(t, []analytics.PriorityResponse{
		{Priority: "critical", Complaints: 1, AvgFirstResponseHours: 1},
		{Priority: "low", Complaints: 1, AvgFirstResponseHours: 10},
	}, r.ResponseTimeByPriority)
}

func TestComputeTeamPerformance(t *testing.T) {
	profiles := []staff.Profile{
		{UserID: "s-1", FullName: "Sari", Department: "customer_service", IsActive: true,
			CurrentAssignedCount: 2, MaxAssignedComplaints: 5, AvgResolutionTime: 30.25, CustomerSatisfactionAvg: 4.333},
		{UserID: "s-2", FullName: "Tono", Department: "customer_service", IsActive: true,
			CurrentAssignedCount: 1, MaxAssignedComplaints: 5},
		{UserID: "s-3", FullName: "Inactive", IsActive: false},
	}

	mk := func(owner string, status complaint.Status, priority complaint.Priority, resolveHours float64, escalated bool) complaint.Complaint {
		c := newComplaint(at(2, 8), status, priority)
		c.AssignedTo = strPtr(owner)
		c.Escalated = escalated
		if resolveHours > 0 {
			c.ResolvedAt = after(c.CreatedAt, resolveHours)
		}
		return c
	}
	complaints := []complaint.Complaint{
		mk("s-1", complaint.StatusInvestigation, complaint.PriorityCritical, 0, true),
		mk("s-2", complaint.StatusResolved, complaint.PriorityMedium, 10, false),
		mk("s-2", complaint.StatusResolved, complaint.PriorityCritical, 60, false),
		mk("s-2", complaint.StatusClosed, complaint.PriorityLow, 20, true),
		mk("s-3", complaint.StatusResolved, complaint.PriorityLow, 5, false),
	}

	r := analytics.Compute(complaints, profiles, now, 30)
	require.Len(t, r.Team, 2)

	top := r.Team[0]
	assert.Equal(t, "s-2", top.UserID)
	assert.Equal(t, 3, top.Assigned)
	assert.Equal(t, 3, top.Resolved)
	assert.Equal(t, 1, top.Escalated)
	assert.Equal(t, 1, top.Critical)
	assert.Equal(t, 1, top.SLABreaches)

	second := r.Team[1]
	assert.Equal(t, "s-1", second.UserID)
	assert.Equal(t, 1, second.Assigned)
	assert.Equal(t, 0, second.Resolved)
	assert.Equal(t, 1, second.Critical)
	assert.Equal(t, 2, second.CurrentLoad)
	assert.Equal(t, 5, second.MaxLoad)
	assert.Equal(t, 30.3, second.AvgResolutionTime)
	assert.Equal(t, 4.33, second.CustomerSatisfactionAvg)
}
