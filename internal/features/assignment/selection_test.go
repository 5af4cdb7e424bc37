package assignment_test

import (
	"testing"

	"seedcare/internal/common/apperror"
	"seedcare/internal/features/assignment"
	"seedcare/internal/features/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(id string, load, max int, csat float64) staff.Profile {
	return staff.Profile{
		UserID:                  id,
		Department:              "customer_service",
		CurrentAssignedCount:    load,
		MaxAssignedComplaints:   max,
		CustomerSatisfactionAvg: csat,
		IsActive:                true,
	}
}

func TestSelectCandidatePrefersLeastLoaded(t *testing.T) {
	chosen, err := assignment.SelectCandidate("customer_service", []staff.Profile{
		profile("a", 3, 5, 4.0),
		profile("b", 1, 5, 3.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "b", chosen.UserID)
}

func TestSelectCandidateBreaksTiesByCSAT(t *testing.T) {
	chosen, err := assignment.SelectCandidate("customer_service", []staff.Profile{
		profile("a", 2, 5, 3.5),
		profile("b", 2, 5, 4.8),
		profile("c", 2, 5, 4.1),
	})
	require.NoError(t, err)
	assert.Equal(t, "b", chosen.UserID)
}

func TestSelectCandidateSkipsFullStaff(t *testing.T) {
	chosen, err := assignment.SelectCandidate("customer_service", []staff.Profile{
		profile("full", 0, 0, 5.0),
		profile("over", 6, 5, 5.0),
		profile("ok", 4, 5, 1.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", chosen.UserID)
}

func TestSelectCandidateNoActiveStaff(t *testing.T) {
	inactive := profile("a", 0, 5, 4.0)
	inactive.IsActive = false

	for _, profiles := range [][]staff.Profile{nil, {inactive}} {
		_, err := assignment.SelectCandidate("observasi", profiles)
		require.ErrorIs(t, err, apperror.ErrNoEligibleStaff)

		nes, ok := apperror.IsNoEligibleStaff(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ReasonNoActiveStaff, nes.Reason)
		assert.Equal(t, "observasi", nes.Department)
	}
}

func TestSelectCandidateAllAtCapacity(t *testing.T) {
	_, err := assignment.SelectCandidate("customer_service", []staff.Profile{
		profile("a", 5, 5, 4.0),
		profile("b", 3, 3, 3.0),
	})
	nes, ok := apperror.IsNoEligibleStaff(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ReasonAllAtCapacity, nes.Reason)
	assert.Equal(t, 2, nes.Candidates)
}

func TestSelectCandidateDoesNotReorderInput(t *testing.T) {
	profiles := []staff.Profile{profile("a", 3, 5, 4.0), profile("b", 1, 5, 3.0)}
	_, err := assignment.SelectCandidate("customer_service", profiles)
	require.NoError(t, err)
	assert.Equal(t, "a", profiles[0].UserID)
}
