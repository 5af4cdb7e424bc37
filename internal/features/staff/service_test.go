package staff_test

import (
	"context"
	"testing"

	"seedcare/internal/common/apperror"
	"seedcare/internal/features/complaint/complainttest"
	"seedcare/internal/features/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateProfile(t *testing.T) {
	store := complainttest.NewStaffStore()
	svc := staff.NewStaffService(store, zap.NewNop())

	p := &staff.Profile{UserID: "  u1 ", FullName: "Sari", Department: " cs ", MaxAssignedComplaints: 5, IsActive: true}
	require.NoError(t, svc.CreateProfile(context.Background(), p))

	got, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "cs", got.Department)
	assert.Equal(t, 0, got.CurrentAssignedCount)
}

func TestCreateProfileValidation(t *testing.T) {
	svc := staff.NewStaffService(complainttest.NewStaffStore(), zap.NewNop())

	tests := []struct {
		name    string
		profile staff.Profile
	}{
		{"missing user", staff.Profile{FullName: "A", Department: "cs"}},
		{"missing name", staff.Profile{UserID: "u", Department: "cs"}},
		{"missing department", staff.Profile{UserID: "u", FullName: "A"}},
		{"negative capacity", staff.Profile{UserID: "u", FullName: "A", Department: "cs", MaxAssignedComplaints: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			assert.ErrorIs(t, svc.CreateProfile(context.Background(), &p), apperror.ErrValidation)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	store := complainttest.NewStaffStore(staff.Profile{UserID: "u1", FullName: "Sari", Department: "cs", MaxAssignedComplaints: 5, IsActive: true})
	svc := staff.NewStaffService(store, zap.NewNop())

	capacity, inactive := 8, false
	got, err := svc.UpdateProfile(context.Background(), "u1", staff.ProfileUpdate{MaxAssignedComplaints: &capacity, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 8, got.MaxAssignedComplaints)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Sari", got.FullName)

	negative := -2
	_, err = svc.UpdateProfile(context.Background(), "u1", staff.ProfileUpdate{MaxAssignedComplaints: &negative})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.UpdateProfile(context.Background(), "ghost", staff.ProfileUpdate{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListProfilesFilters(t *testing.T) {
	store := complainttest.NewStaffStore(
		staff.Profile{UserID: "a", FullName: "A", Department: "cs", IsActive: true},
		staff.Profile{UserID: "b", FullName: "B", Department: "cs", IsActive: false},
		staff.Profile{UserID: "c", FullName: "C", Department: "qa", IsActive: true},
	)
	svc := staff.NewStaffService(store, zap.NewNop())

	all, err := svc.ListProfiles(context.Background(), staff.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.ListProfiles(context.Background(), staff.ListFilter{Department: "cs", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].UserID)
}

func TestReportResolutionRunningAverages(t *testing.T) {
	store := complainttest.NewStaffStore(staff.Profile{UserID: "u1", FullName: "Sari", Department: "cs", IsActive: true})
	svc := staff.NewStaffService(store, zap.NewNop())
	ctx := context.Background()

	four, two := 4, 2
	require.NoError(t, svc.ReportResolution(ctx, "u1", 10, &four))
	require.NoError(t, svc.ReportResolution(ctx, "u1", 20, nil))
	require.NoError(t, svc.ReportResolution(ctx, "u1", -5, &two))

	p := store.Profile("u1")
	assert.Equal(t, 3, p.ResolvedCount)
	assert.InDelta(t, 10.0, p.AvgResolutionTime, 0.001)
	assert.Equal(t, 2, p.RatedCount)
	assert.InDelta(t, 3.0, p.CustomerSatisfactionAvg, 0.001)
}

func TestHasCapacity(t *testing.T) {
	assert.True(t, staff.Profile{CurrentAssignedCount: 2, MaxAssignedComplaints: 3}.HasCapacity())
	assert.False(t, staff.Profile{CurrentAssignedCount: 3, MaxAssignedComplaints: 3}.HasCapacity())
	assert.False(t, staff.Profile{MaxAssignedComplaints: 0}.HasCapacity())
}
