package assignment

import (
	"sort"

	"seedcare/internal/common/apperror"
	"seedcare/internal/features/staff"
)

// SelectCandidate picks the auto-assign target among a department's profiles:
// least loaded first, best CSAT as tiebreak, skipping anyone at capacity.
func SelectCandidate(department string, profiles []staff.Profile) (*staff.Profile, error) {
	active := make([]staff.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.IsActive {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil, &apperror.NoEligibleStaffError{
			Department: department,
			Reason:     apperror.ReasonNoActiveStaff,
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].CurrentAssignedCount != active[j].CurrentAssignedCount {
			return active[i].CurrentAssignedCount < active[j].CurrentAssignedCount
		}
		return active[i].CustomerSatisfactionAvg > active[j].CustomerSatisfactionAvg
	})

	for i := range active {
		if active[i].HasCapacity() {
			chosen := active[i]
			return &chosen, nil
		}
	}

	return nil, &apperror.NoEligibleStaffError{
		Department: department,
		Reason:     apperror.ReasonAllAtCapacity,
		Candidates: len(active),
	}
}
