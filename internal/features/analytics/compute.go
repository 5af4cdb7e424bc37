package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"seedcare/internal/features/complaint"
	"seedcare/internal/features/staff"
)

// Compute aggregates the complaints created in [now-periodDays, now] and the
// active staff profiles into a Report. It has no side effects.
func Compute(complaints []complaint.Complaint, profiles []staff.Profile, now time.Time, periodDays int) Report {
	from := now.AddDate(0, 0, -periodDays)
	r := Report{
		PeriodDays:  periodDays,
		From:        from,
		To:          now,
		GeneratedAt: now,
		Distribution: Distribution{
			ByStatus:        map[string]int{},
			ByPriority:      map[string]int{},
			ByDepartment:    map[string]int{},
			ByComplaintType: map[string]int{},
		},
		Trend:                  []TrendPoint{},
		Team:                   []TeamMember{},
		ResponseTimeByPriority: []PriorityResponse{},
	}

	inPeriod := make([]*complaint.Complaint, 0, len(complaints))
	for i := range complaints {
		c := &complaints[i]
		if c.CreatedAt.Before(from) || c.CreatedAt.After(now) {
			continue
		}
		inPeriod = append(inPeriod, c)
	}

	var (
		resolutionHours    mean
		firstResponseHours mean
		assignHours        mean
		ratings            mean
		byPriority         = map[complaint.Priority]*mean{}
		ratingCounts       [5]int
		products           []ProductCount
		productIndex       = map[string]int{}
		trend              = map[string]*TrendPoint{}
	)

	for _, c := range inPeriod {
		resolved := c.IsResolved()

		r.Summary.Total++
		if resolved {
			r.Summary.Resolved++
		}
		if c.Escalated {
			r.Summary.Escalated++
		}

		if c.ResolvedAt != nil {
			resolutionHours.add(c.ResolvedAt.Sub(c.CreatedAt).Hours())
		}
		if c.FirstResponseAt != nil {
			h := c.FirstResponseAt.Sub(c.CreatedAt).Hours()
			firstResponseHours.add(h)
			m, ok := byPriority[c.Priority]
			if !ok {
				m = &mean{}
				byPriority[c.Priority] = m
			}
			m.add(h)
		}

		if breached, ok := c.FirstResponseBreached(); ok {
			r.SLA.FirstResponse.WithData++
			if breached {
				r.SLA.FirstResponse.Breaches++
			}
		}
		if breached, ok := c.ResolutionBreached(); ok {
			r.SLA.Resolution.WithData++
			if breached {
				r.SLA.Resolution.Breaches++
			}
		}

		if c.CustomerSatisfactionRating != nil {
			rating := *c.CustomerSatisfactionRating
			ratings.add(float64(rating))
			if rating >= 1 && rating <= 5 {
				ratingCounts[rating-1]++
			}
		}

		r.Distribution.ByStatus[string(c.Status)]++
		r.Distribution.ByPriority[string(c.Priority)]++
		r.Distribution.ByDepartment[bucket(c.Department, unassignedBucket)]++
		r.Distribution.ByComplaintType[bucket(c.ComplaintType, unspecifiedBucket)]++

		if strings.TrimSpace(c.RelatedProductSerial) != "" {
			r.Products.WithSerial++
		}
		if name := strings.TrimSpace(c.RelatedProductName); name != "" {
			if i, ok := productIndex[name]; ok {
				products[i].Count++
			} else {
				productIndex[name] = len(products)
				products = append(products, ProductCount{Name: name, Count: 1})
			}
		}

		day := c.CreatedAt.In(now.Location()).Format(time.DateOnly)
		p, ok := trend[day]
		if !ok {
			p = &TrendPoint{Date: day}
			trend[day] = p
		}
		p.Total++
		if resolved {
			p.Resolved++
		} else {
			p.Pending++
		}
		if c.Escalated {
			p.Escalated++
		}
		if c.Priority == complaint.PriorityCritical {
			p.Critical++
		}

		if c.IsAssigned() {
			r.Assignment.Assigned++
			if c.AssignedAt != nil {
				assignHours.add(c.AssignedAt.Sub(c.CreatedAt).Hours())
			}
		} else {
			r.Assignment.Unassigned++
		}
	}

	r.Summary.Pending = r.Summary.Total - r.Summary.Resolved
	r.Summary.ResolutionRate = percent(r.Summary.Resolved, r.Summary.Total)
	r.Summary.EscalationRate = percent(r.Summary.Escalated, r.Summary.Total)
	r.Summary.AvgResolutionHours = resolutionHours.hours()
	r.Summary.AvgFirstResponseHours = firstResponseHours.hours()

	r.SLA.FirstResponse.Compliance = compliance(r.SLA.FirstResponse)
	r.SLA.Resolution.Compliance = compliance(r.SLA.Resolution)

	r.Satisfaction.Rated = ratings.n
	r.Satisfaction.Average = ratings.value(2)
	r.Satisfaction.Distribution = make([]RatingBucket, 5)
	for i, n := range ratingCounts {
		r.Satisfaction.Distribution[i] = RatingBucket{Rating: i + 1, Count: n}
	}

	r.Products.WithSerialPct = percent(r.Products.WithSerial, r.Summary.Total)
	sort.SliceStable(products, func(i, j int) bool { return products[i].Count > products[j].Count })
	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}
	r.Products.TopProducts = append([]ProductCount{}, products...)

	for _, p := range trend {
		r.Trend = append(r.Trend, *p)
	}
	sort.Slice(r.Trend, func(i, j int) bool { return r.Trend[i].Date < r.Trend[j].Date })

	r.Assignment.AvgTimeToAssignHours = assignHours.hours()

	for _, p := range complaint.Priorities {
		m, ok := byPriority[p]
		if !ok || m.n == 0 {
			continue
		}
		r.ResponseTimeByPriority = append(r.ResponseTimeByPriority, PriorityResponse{
			Priority:              string(p),
			Complaints:            m.n,
			AvgFirstResponseHours: m.hours(),
		})
	}

	r.Team = teamPerformance(inPeriod, profiles)
	return r
}

func teamPerformance(complaints []*complaint.Complaint, profiles []staff.Profile) []TeamMember {
	team := []TeamMember{}
	index := map[string]int{}
	for _, p := range profiles {
		if !p.IsActive {
			continue
		}
		index[p.UserID] = len(team)
		team = append(team, TeamMember{
			UserID:                  p.UserID,
			FullName:                p.FullName,
			Department:              p.Department,
			AvgResolutionTime:       round(p.AvgResolutionTime, 1),
			CustomerSatisfactionAvg: round(p.CustomerSatisfactionAvg, 2),
			CurrentLoad:             p.CurrentAssignedCount,
			MaxLoad:                 p.MaxAssignedComplaints,
		})
	}

	for _, c := range complaints {
		if !c.IsAssigned() {
			continue
		}
		i, ok := index[*c.AssignedTo]
		if !ok {
			continue
		}
		m := &team[i]
		m.Assigned++
		if c.Escalated {
			m.Escalated++
		}
		if c.Priority == complaint.PriorityCritical {
			m.Critical++
		}
		if c.IsResolved() {
			m.Resolved++
			if breached, ok := c.ResolutionBreached(); ok && breached {
				m.SLABreaches++
			}
		}
	}

	sort.SliceStable(team, func(i, j int) bool { return team[i].Resolved > team[j].Resolved })
	return team
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m mean) value(places int) float64 {
	if m.n == 0 {
		return 0
	}
	return round(m.sum/float64(m.n), places)
}

func (m mean) hours() float64 {
	return m.value(1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// compliance is 100 when nothing could breach
func compliance(s SLAStat) int {
	if s.WithData == 0 {
		return 100
	}
	return percent(s.WithData-s.Breaches, s.WithData)
}

func bucket(v, empty string) string {
	if v = strings.TrimSpace(v); v == "" {
		return empty
	}
	return v
}
