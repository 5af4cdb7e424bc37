package complaint

import (
	"time"

	"seedcare/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities in descending urgency
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

const (
	DefaultDepartment       = "customer_service"
	DefaultFirstResponseSLA = "24:00:00"
	DefaultResolutionSLA    = "168:00:00"
)

type Complaint struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintNumber string             `bson:"complaint_number" json:"complaint_number"`

	// Classification
	ComplaintCategoryID      string   `bson:"complaint_category_id,omitempty" json:"complaint_category_id,omitempty"`
	ComplaintCategoryName    string   `bson:"complaint_category_name,omitempty" json:"complaint_category_name,omitempty"`
	ComplaintSubcategoryID   string   `bson:"complaint_subcategory_id,omitempty" json:"complaint_subcategory_id,omitempty"`
	ComplaintSubcategoryName string   `bson:"complaint_subcategory_name,omitempty" json:"complaint_subcategory_name,omitempty"`
	ComplaintCaseTypeIDs     []string `bson:"complaint_case_type_ids" json:"complaint_case_type_ids"`
	ComplaintCaseTypeNames   []string `bson:"complaint_case_type_names" json:"complaint_case_type_names"`
	ComplaintType            string   `bson:"complaint_type,omitempty" json:"complaint_type,omitempty"`
	Description              string   `bson:"description,omitempty" json:"description,omitempty"`

	// Customer facts, immutable after creation
	CustomerName     string `bson:"customer_name" json:"customer_name"`
	CustomerPhone    string `bson:"customer_phone" json:"customer_phone"`
	CustomerEmail    string `bson:"customer_email,omitempty" json:"customer_email,omitempty"`
	CustomerProvince string `bson:"customer_province" json:"customer_province"`
	CustomerCity     string `bson:"customer_city" json:"customer_city"`
	CustomerAddress  string `bson:"customer_address" json:"customer_address"`

	// Workflow
	Status     Status     `bson:"status" json:"status"`
	Priority   Priority   `bson:"priority" json:"priority"`
	Department string     `bson:"department,omitempty" json:"department,omitempty"`
	AssignedTo *string    `bson:"assigned_to" json:"assigned_to"`
	AssignedAt *time.Time `bson:"assigned_at" json:"assigned_at"`
	AssignedBy *string    `bson:"assigned_by" json:"assigned_by"` // nil = system auto-assignment

	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
	FirstResponseAt *time.Time `bson:"first_response_at,omitempty" json:"first_response_at,omitempty"`
	ResolvedAt      *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`

	Escalated        bool       `bson:"escalated" json:"escalated"`
	EscalatedAt      *time.Time `bson:"escalated_at,omitempty" json:"escalated_at,omitempty"`
	EscalationReason string     `bson:"escalation_reason,omitempty" json:"escalation_reason,omitempty"`

	FirstResponseSLA string `bson:"first_response_sla,omitempty" json:"first_response_sla,omitempty"`
	ResolutionSLA    string `bson:"resolution_sla,omitempty" json:"resolution_sla,omitempty"`

	Resolution        string  `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ResolutionSummary string  `bson:"resolution_summary,omitempty" json:"resolution_summary,omitempty"`
	ResolvedBy        *string `bson:"resolved_by,omitempty" json:"resolved_by,omitempty"`

	CustomerSatisfactionRating *int       `bson:"customer_satisfaction_rating,omitempty" json:"customer_satisfaction_rating,omitempty"`
	CustomerFeedback           string     `bson:"customer_feedback,omitempty" json:"customer_feedback,omitempty"`
	FeedbackQuickAnswers       []string   `bson:"feedback_quick_answers,omitempty" json:"feedback_quick_answers,omitempty"`
	FeedbackSubmittedAt        *time.Time `bson:"feedback_submitted_at,omitempty" json:"feedback_submitted_at,omitempty"`

	AcknowledgedReplacementQty    *int   `bson:"acknowledged_replacement_qty,omitempty" json:"acknowledged_replacement_qty,omitempty"`
	AcknowledgedReplacementHybrid string `bson:"acknowledged_replacement_hybrid,omitempty" json:"acknowledged_replacement_hybrid,omitempty"`

	RelatedProductSerial string `bson:"related_product_serial,omitempty" json:"related_product_serial,omitempty"`
	RelatedProductName   string `bson:"related_product_name,omitempty" json:"related_product_name,omitempty"`
}

// Assigner returns who made the current assignment
func (c *Complaint) Assigner() models.Actor {
	return models.ActorFromRef(c.AssignedBy)
}

func (c *Complaint) IsAssigned() bool {
	return c.AssignedTo != nil && *c.AssignedTo != ""
}

func (c *Complaint) IsResolved() bool {
	return c.Status.IsTerminal()
}

type HistoryAction string

const (
	ActionCreated                     HistoryAction = "created"
	ActionStatusChanged               HistoryAction = "status_changed"
	ActionAcknowledgedWithReplacement HistoryAction = "acknowledged_with_replacement"
	ActionResolved                    HistoryAction = "resolved"
	ActionResponseAdded               HistoryAction = "response_added"
	ActionInternalNoteAdded           HistoryAction = "internal_note_added"
	ActionEscalated                   HistoryAction = "escalated"
	ActionAssigned                    HistoryAction = "assigned"
	ActionAutoAssigned                HistoryAction = "auto_assigned"
	ActionUnassigned                  HistoryAction = "unassigned"
	ActionObservationRecorded         HistoryAction = "observation_recorded"
	ActionInvestigationRecorded       HistoryAction = "investigation_recorded"
	ActionLabTestingRecorded          HistoryAction = "lab_testing_recorded"
)

// HistoryEntry is the append-only audit trail of a complaint
type HistoryEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID primitive.ObjectID `bson:"complaint_id" json:"complaint_id"`
	Action      HistoryAction      `bson:"action" json:"action"`
	OldValue    string             `bson:"old_value,omitempty" json:"old_value,omitempty"`
	NewValue    string             `bson:"new_value,omitempty" json:"new_value,omitempty"`
	CreatedBy   string             `bson:"created_by" json:"created_by"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Response is a staff reply; internal ones are never shown to the customer
type Response struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID primitive.ObjectID `bson:"complaint_id" json:"complaint_id"`
	Message     string             `bson:"message" json:"message"`
	IsInternal  bool               `bson:"is_internal" json:"is_internal"`
	CreatedBy   string             `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type ListFilter struct {
	Status     Status
	Priority   Priority
	Department string
	AssignedTo string
	Search     string
	SortBy     string
	SortOrder  int
}

// CreateInput holds what the customer submits
type CreateInput struct {
	ComplaintCategoryID      string   `json:"complaint_category_id"`
	ComplaintCategoryName    string   `json:"complaint_category_name"`
	ComplaintSubcategoryID   string   `json:"complaint_subcategory_id"`
	ComplaintSubcategoryName string   `json:"complaint_subcategory_name"`
	ComplaintCaseTypeIDs     []string `json:"complaint_case_type_ids" validate:"required,min=1,dive,required"`
	ComplaintCaseTypeNames   []string `json:"complaint_case_type_names"`
	ComplaintType            string   `json:"complaint_type"`
	Description              string   `json:"description"`

	CustomerName     string `json:"customer_name" validate:"required"`
	CustomerPhone    string `json:"customer_phone" validate:"required"`
	CustomerEmail    string `json:"customer_email" validate:"omitempty,email"`
	CustomerProvince string `json:"customer_province" validate:"required"`
	CustomerCity     string `json:"customer_city" validate:"required"`
	CustomerAddress  string `json:"customer_address" validate:"required"`

	Priority             Priority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Department           string   `json:"department"`
	RelatedProductSerial string   `json:"related_product_serial"`
	RelatedProductName   string   `json:"related_product_name"`
}

type ResolveInput struct {
	Resolution         string `json:"resolution" validate:"required"`
	ResolutionSummary  string `json:"resolution_summary"`
	SatisfactionRating *int   `json:"satisfaction_rating" validate:"omitempty,min=1,max=5"`
}

type FeedbackInput struct {
	Rating       int      `json:"rating" validate:"min=1,max=5"`
	QuickAnswers []string `json:"quick_answers"`
	Feedback     string   `json:"feedback"`
}

// TrackingView is what the public tracking page may see
type TrackingView struct {
	ComplaintNumber   string      `json:"complaint_number"`
	Status            Status      `json:"status"`
	StatusLabel       StatusLabel `json:"status_label"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	ResolvedAt        *time.Time  `json:"resolved_at,omitempty"`
	ResolutionSummary string      `json:"resolution_summary,omitempty"`
	FeedbackSubmitted bool        `json:"feedback_submitted"`
	Responses         []Response  `json:"responses"`
}
