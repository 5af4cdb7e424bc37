package staff

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is one staff member eligible to own complaints
type Profile struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                  string             `bson:"user_id" json:"user_id"`
	FullName                string             `bson:"full_name" json:"full_name"`
	Email                   string             `bson:"email,omitempty" json:"email,omitempty"`
	Department              string             `bson:"department" json:"department"`
	ComplaintPermissions    map[string]bool    `bson:"complaint_permissions,omitempty" json:"complaint_permissions,omitempty"`
	MaxAssignedComplaints   int                `bson:"max_assigned_complaints" json:"max_assigned_complaints"`
	CurrentAssignedCount    int                `bson:"current_assigned_count" json:"current_assigned_count"`
	CustomerSatisfactionAvg float64            `bson:"customer_satisfaction_avg" json:"customer_satisfaction_avg"`
	AvgResolutionTime       float64            `bson:"avg_resolution_time" json:"avg_resolution_time"` // hours
	ResolvedCount           int                `bson:"resolved_count" json:"resolved_count"`
	RatedCount              int                `bson:"rated_count" json:"rated_count"`
	IsActive                bool               `bson:"is_active" json:"is_active"`
	CreatedAt               time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt               time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasCapacity reports whether the profile can take another complaint
func (p Profile) HasCapacity() bool {
	return p.CurrentAssignedCount < p.MaxAssignedComplaints
}

// ProfileUpdate carries the admin-editable fields; nil means unchanged
type ProfileUpdate struct {
	FullName              *string         `json:"full_name" validate:"omitempty,min=1"`
	Email                 *string         `json:"email" validate:"omitempty,email"`
	Department            *string         `json:"department" validate:"omitempty,min=1"`
	ComplaintPermissions  map[string]bool `json:"complaint_permissions"`
	MaxAssignedComplaints *int            `json:"max_assigned_complaints" validate:"omitempty,min=0"`
	IsActive              *bool           `json:"is_active"`
}

type ListFilter struct {
	Department string
	ActiveOnly bool
}
