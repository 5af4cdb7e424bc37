package complaint

import (
	"strconv"
	"strings"
	"time"
)

// ParseSLA reads an interval string such as "24:00:00", "7 days" or "7 days 02:30:00".
// The second return is false when the value is empty or malformed.
func ParseSLA(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var days int
	if i := strings.Index(s, " "); i > 0 {
		fields := strings.Fields(s)
		if len(fields) < 2 || len(fields) > 3 || (fields[1] != "day" && fields[1] != "days") {
			return 0, false
		}
		d, err := strconv.Atoi(fields[0])
		if err != nil || d < 0 {
			return 0, false
		}
		days = d
		// "7 days" carries no time part
		if len(fields) == 2 {
			return time.Duration(days) * 24 * time.Hour, true
		}
		s = fields[2]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		nums[i] = n
	}
	if nums[1] > 59 || nums[2] > 59 {
		return 0, false
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(nums[0])*time.Hour +
		time.Duration(nums[1])*time.Minute +
		time.Duration(nums[2])*time.Second
	return d, true
}

// ResolutionBreached reports whether the complaint was resolved later than its
// resolution SLA. Complaints without both values cannot breach.
func (c *Complaint) ResolutionBreached() (breached, qualifies bool) {
	if c.ResolvedAt == nil || c.CreatedAt.IsZero() {
		return false, false
	}
	target, ok := ParseSLA(c.ResolutionSLA)
	if !ok {
		return false, false
	}
	return c.ResolvedAt.Sub(c.CreatedAt) > target, true
}

// FirstResponseBreached is the first-response counterpart of ResolutionBreached
func (c *Complaint) FirstResponseBreached() (breached, qualifies bool) {
	if c.FirstResponseAt == nil || c.CreatedAt.IsZero() {
		return false, false
	}
	target, ok := ParseSLA(c.FirstResponseSLA)
	if !ok {
		return false, false
	}
	return c.FirstResponseAt.Sub(c.CreatedAt) > target, true
}
