package analytics

import "time"

const (
	DefaultPeriodDays = 30
	MaxPeriodDays     = 365

	unassignedBucket  = "unassigned"
	unspecifiedBucket = "unspecified"
	topProductsLimit  = 5
)

// Report is the complaint analytics of one period. It is recomputed on every
// request from the stored complaints and staff profiles.
type Report struct {
	PeriodDays  int       `bson:"period_days" json:"period_days"`
	From        time.Time `bson:"from" json:"from"`
	To          time.Time `bson:"to" json:"to"`
	GeneratedAt time.Time `bson:"generated_at" json:"generated_at"`

	Summary                Summary            `bson:"summary" json:"summary"`
	SLA                    SLACompliance      `bson:"sla" json:"sla"`
	Satisfaction           Satisfaction       `bson:"satisfaction" json:"satisfaction"`
	Distribution           Distribution       `bson:"distribution" json:"distribution"`
	Products               ProductMetrics     `bson:"products" json:"products"`
	Trend                  []TrendPoint       `bson:"trend" json:"trend"`
	Assignment             AssignmentMetrics  `bson:"assignment" json:"assignment"`
	Team                   []TeamMember       `bson:"team" json:"team"`
	ResponseTimeByPriority []PriorityResponse `bson:"response_time_by_priority" json:"response_time_by_priority"`
}

type Summary struct {
	Total                 int     `bson:"total" json:"total"`
	Resolved              int     `bson:"resolved" json:"resolved"`
	Pending               int     `bson:"pending" json:"pending"`
	ResolutionRate        int     `bson:"resolution_rate" json:"resolution_rate"`
	Escalated             int     `bson:"escalated" json:"escalated"`
	EscalationRate        int     `bson:"escalation_rate" json:"escalation_rate"`
	AvgResolutionHours    float64 `bson:"avg_resolution_hours" json:"avg_resolution_hours"`
	AvgFirstResponseHours float64 `bson:"avg_first_response_hours" json:"avg_first_response_hours"`
}

// SLAStat counts complaints that had a chance to breach a target and those that did
type SLAStat struct {
	WithData   int `bson:"with_data" json:"with_data"`
	Breaches   int `bson:"breaches" json:"breaches"`
	Compliance int `bson:"compliance" json:"compliance"`
}

type SLACompliance struct {
	FirstResponse SLAStat `bson:"first_response" json:"first_response"`
	Resolution    SLAStat `bson:"resolution" json:"resolution"`
}

type RatingBucket struct {
	Rating int `bson:"rating" json:"rating"`
	Count  int `bson:"count" json:"count"`
}

type Satisfaction struct {
	Average      float64        `bson:"average" json:"average"`
	Rated        int            `bson:"rated" json:"rated"`
	Distribution []RatingBucket `bson:"distribution" json:"distribution"`
}

type Distribution struct {
	ByStatus        map[string]int `bson:"by_status" json:"by_status"`
	ByPriority      map[string]int `bson:"by_priority" json:"by_priority"`
	ByDepartment    map[string]int `bson:"by_department" json:"by_department"`
	ByComplaintType map[string]int `bson:"by_complaint_type" json:"by_complaint_type"`
}

type ProductCount struct {
	Name  string `bson:"name" json:"name"`
	Count int    `bson:"count" json:"count"`
}

type ProductMetrics struct {
	WithSerial    int            `bson:"with_serial" json:"with_serial"`
	WithSerialPct int            `bson:"with_serial_pct" json:"with_serial_pct"`
	TopProducts   []ProductCount `bson:"top_products" json:"top_products"`
}

// TrendPoint is one calendar day of the period
type TrendPoint struct {
	Date      string `bson:"date" json:"date"`
	Total     int    `bson:"total" json:"total"`
	Resolved  int    `bson:"resolved" json:"resolved"`
	Pending   int    `bson:"pending" json:"pending"`
	Escalated int    `bson:"escalated" json:"escalated"`
	Critical  int    `bson:"critical" json:"critical"`
}

type AssignmentMetrics struct {
	Assigned             int     `bson:"assigned" json:"assigned"`
	Unassigned           int     `bson:"unassigned" json:"unassigned"`
	AvgTimeToAssignHours float64 `bson:"avg_time_to_assign_hours" json:"avg_time_to_assign_hours"`
}

type TeamMember struct {
	UserID                  string  `bson:"user_id" json:"user_id"`
	FullName                string  `bson:"full_name" json:"full_name"`
	Department              string  `bson:"department" json:"department"`
	Assigned                int     `bson:"assigned" json:"assigned"`
	Resolved                int     `bson:"resolved" json:"resolved"`
	AvgResolutionTime       float64 `bson:"avg_resolution_time" json:"avg_resolution_time"`
	CustomerSatisfactionAvg float64 `bson:"customer_satisfaction_avg" json:"customer_satisfaction_avg"`
	CurrentLoad             int     `bson:"current_load" json:"current_load"`
	MaxLoad                 int     `bson:"max_load" json:"max_load"`
	Escalated               int     `bson:"escalated" json:"escalated"`
	Critical                int     `bson:"critical" json:"critical"`
	SLABreaches             int     `bson:"sla_breaches" json:"sla_breaches"`
}

type PriorityResponse struct {
	Priority              string  `bson:"priority" json:"priority"`
	Complaints            int     `bson:"complaints" json:"complaints"`
	AvgFirstResponseHours float64 `bson:"avg_first_response_hours" json:"avg_first_response_hours"`
}
