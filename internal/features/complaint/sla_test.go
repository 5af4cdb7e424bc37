package complaint_test

import (
	"testing"
	"time"

	"seedcare/internal/features/complaint"

	"github.com/stretchr/testify/assert"
)

func TestParseSLA(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"24:00:00", 24 * time.Hour, true},
		{"168:00:00", 168 * time.Hour, true},
		{"01:30:15", time.Hour + 30*time.Minute + 15*time.Second, true},
		{"1 day 02:00:00", 26 * time.Hour, true},
		{"7 days 00:00:00", 168 * time.Hour, true},
		{"7 days", 168 * time.Hour, true},
		{"1 day", 24 * time.Hour, true},
		{"days", 0, false},
		{"x days", 0, false},
		{"", 0, false},
		{"24h", 0, false},
		{"24:00", 0, false},
		{"01:75:00", 0, false},
		{"2 weeks 00:00:00", 0, false},
	}

	for _, tt := range tests {
		got, ok := complaint.ParseSLA(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResolutionBreached(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	within := created.Add(23 * time.Hour)
	late := created.Add(25 * time.Hour)

	c := complaint.Complaint{CreatedAt: created, ResolutionSLA: "24:00:00", ResolvedAt: &within}
	breached, qualifies := c.ResolutionBreached()
	assert.True(t, qualifies)
	assert.False(t, breached)

	c.ResolvedAt = &late
	breached, qualifies = c.ResolutionBreached()
	assert.True(t, qualifies)
	assert.True(t, breached)

	c.ResolutionSLA = ""
	_, qualifies = c.ResolutionBreached()
	assert.False(t, qualifies)
}
