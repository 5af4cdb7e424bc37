package assignment

import (
	"time"

	"seedcare/internal/common/models"
	"seedcare/internal/features/complaint"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is one entry of a complaint's assignment history. At most one record
// per complaint is active.
type Record struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID      primitive.ObjectID `bson:"complaint_id" json:"complaint_id"`
	AssignedTo       string             `bson:"assigned_to" json:"assigned_to"`
	AssignedBy       *string            `bson:"assigned_by" json:"assigned_by"` // nil = system
	AssignmentReason string             `bson:"assignment_reason,omitempty" json:"assignment_reason,omitempty"`
	PreviousAssignee *string            `bson:"previous_assignee" json:"previous_assignee"`
	Department       string             `bson:"department,omitempty" json:"department,omitempty"`
	IsActive         bool               `bson:"is_active" json:"is_active"`
	AssignedAt       time.Time          `bson:"assigned_at" json:"assigned_at"`
	UnassignedAt     *time.Time         `bson:"unassigned_at,omitempty" json:"unassigned_at,omitempty"`
	UnassignedBy     *string            `bson:"unassigned_by,omitempty" json:"unassigned_by,omitempty"`
}

func (r *Record) Assigner() models.Actor {
	return models.ActorFromRef(r.AssignedBy)
}

type AssignInput struct {
	StaffID    string `json:"staff_id" validate:"required"`
	Department string `json:"department"`
	Reason     string `json:"reason"`
}

type AutoAssignInput struct {
	Department string             `json:"department"`
	Priority   complaint.Priority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
}

// AssignResult describes the new owner of a complaint
type AssignResult struct {
	Complaint        *complaint.Complaint `json:"complaint"`
	AssigneeID       string               `json:"assignee_id"`
	AssigneeName     string               `json:"assignee_name"`
	Department       string               `json:"department"`
	Status           complaint.Status     `json:"status"`
	PreviousAssignee *string              `json:"previous_assignee"`
	Reason           string               `json:"reason"`
}

type StaffLoad struct {
	UserID                  string  `json:"user_id"`
	FullName                string  `json:"full_name"`
	CurrentAssignedCount    int     `json:"current_assigned_count"`
	MaxAssignedComplaints   int     `json:"max_assigned_complaints"`
	Available               int     `json:"available"`
	Utilization             float64 `json:"utilization"`
	CustomerSatisfactionAvg float64 `json:"customer_satisfaction_avg"`
}

type Workload struct {
	Department    string      `json:"department"`
	Staff         []StaffLoad `json:"staff"`
	TotalAssigned int         `json:"total_assigned"`
	TotalCapacity int         `json:"total_capacity"`
	AtCapacity    int         `json:"at_capacity"`
}
