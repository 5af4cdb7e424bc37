package complaint

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/common/models"
	"seedcare/internal/config"
	"seedcare/internal/features/notification"
	"seedcare/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AssignmentCloser deactivates the active assignment record of a complaint
type AssignmentCloser interface {
	CloseActive(ctx context.Context, complaintID primitive.ObjectID, actor models.Actor) error
}

// StaffMetricsReporter receives the numbers behind a staff member's running averages
type StaffMetricsReporter interface {
	ReportResolution(ctx context.Context, userID string, resolutionHours float64, rating *int) error
}

// ComplaintService is the status transition engine plus complaint intake and responses
type ComplaintService interface {
	CreateComplaint(ctx context.Context, input CreateInput) (*Complaint, error)
	GetComplaint(ctx context.Context, id string) (*Complaint, error)
	GetByNumber(ctx context.Context, number string) (*Complaint, error)
	Track(ctx context.Context, number string) (*TrackingView, error)
	ListComplaints(ctx context.Context, filter ListFilter, page, limit int64) ([]Complaint, int64, error)

	// Status management
	Transition(ctx context.Context, id string, target string, actor models.Actor) (*Complaint, error)
	AcknowledgeWithReplacement(ctx context.Context, id string, qty *int, hybrid string, actor models.Actor) (*Complaint, error)
	Resolve(ctx context.Context, id string, input ResolveInput, actor models.Actor) (*Complaint, error)
	SubmitFeedback(ctx context.Context, id string, input FeedbackInput) (*Complaint, error)
	SubmitFeedbackByNumber(ctx context.Context, number string, input FeedbackInput) (*Complaint, error)
	Escalate(ctx context.Context, id string, reason string, actor models.Actor) (*Complaint, error)

	// Responses and history
	AddResponse(ctx context.Context, id string, message string, internal bool, actor models.Actor) (*Response, error)
	ListResponses(ctx context.Context, id string, includeInternal bool) ([]Response, error)
	GetHistory(ctx context.Context, id string) ([]HistoryEntry, error)
}

// ComplaintServiceImpl implements ComplaintService
type ComplaintServiceImpl struct {
	Repo         ComplaintRepository
	HistoryRepo  HistoryRepository
	ResponseRepo ResponseRepository
	Numbers      *NumberGenerator
	Notifier     notification.Notifier
	Assignments  AssignmentCloser
	StaffMetrics StaffMetricsReporter
	TrackingURL  string
	Log          *zap.Logger
	Now          func() time.Time
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	repo ComplaintRepository,
	historyRepo HistoryRepository,
	responseRepo ResponseRepository,
	numbers *NumberGenerator,
	notifier notification.Notifier,
	assignments AssignmentCloser,
	staffMetrics StaffMetricsReporter,
	cfg *config.Config,
	log *zap.Logger,
) ComplaintService {
	return &ComplaintServiceImpl{
		Repo:         repo,
		HistoryRepo:  historyRepo,
		ResponseRepo: responseRepo,
		Numbers:      numbers,
		Notifier:     notifier,
		Assignments:  assignments,
		StaffMetrics: staffMetrics,
		TrackingURL:  cfg.TrackingURL,
		Log:          log,
		Now:          time.Now,
	}
}

func (s *ComplaintServiceImpl) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ParseID converts a hex id from the API into an ObjectID
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("invalid complaint id %q", id)
	}
	return oid, nil
}

// CreateComplaint registers a customer submission under a fresh complaint number
func (s *ComplaintServiceImpl) CreateComplaint(ctx context.Context, input CreateInput) (*Complaint, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, apperror.Validation("invalid priority %q", priority)
	}
	department := strings.TrimSpace(input.Department)
	if department == "" {
		department = DefaultDepartment
	}

	now := s.now()
	c := &Complaint{
		ComplaintCategoryID:      input.ComplaintCategoryID,
		ComplaintCategoryName:    input.ComplaintCategoryName,
		ComplaintSubcategoryID:   input.ComplaintSubcategoryID,
		ComplaintSubcategoryName: input.ComplaintSubcategoryName,
		ComplaintCaseTypeIDs:     input.ComplaintCaseTypeIDs,
		ComplaintCaseTypeNames:   input.ComplaintCaseTypeNames,
		ComplaintType:            strings.TrimSpace(input.ComplaintType),
		Description:              input.Description,
		CustomerName:             strings.TrimSpace(input.CustomerName),
		CustomerPhone:            strings.TrimSpace(input.CustomerPhone),
		CustomerEmail:            strings.TrimSpace(input.CustomerEmail),
		CustomerProvince:         input.CustomerProvince,
		CustomerCity:             input.CustomerCity,
		CustomerAddress:          input.CustomerAddress,
		Status:                   StatusSubmitted,
		Priority:                 priority,
		Department:               department,
		FirstResponseSLA:         DefaultFirstResponseSLA,
		ResolutionSLA:            DefaultResolutionSLA,
		RelatedProductSerial:     strings.TrimSpace(input.RelatedProductSerial),
		RelatedProductName:       strings.TrimSpace(input.RelatedProductName),
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.Numbers.Insert(ctx, c); err != nil {
		return nil, err
	}
	metrics.ComplaintsCreated.Inc()

	s.appendHistory(ctx, &HistoryEntry{
		ComplaintID: c.ID,
		Action:      ActionCreated,
		NewValue:    c.ComplaintNumber,
		CreatedBy:   "customer",
	})

	s.notifyCustomer(ctx, c, notification.TemplateComplaintReceived, nil)

	s.Log.Info("Complaint created",
		zap.String("complaint_id", c.ID.Hex()),
		zap.String("complaint_number", c.ComplaintNumber))
	return c, nil
}

func validateCreateInput(input CreateInput) error {
	required := map[string]string{
		"customer_name":     input.CustomerName,
		"customer_phone":    input.CustomerPhone,
		"customer_province": input.CustomerProvince,
		"customer_city":     input.CustomerCity,
		"customer_address":  input.CustomerAddress,
	}
	for _, field := range []string{"customer_name", "customer_phone", "customer_province", "customer_city", "customer_address"} {
		if strings.TrimSpace(required[field]) == "" {
			return apperror.Validation("%s is required", field)
		}
	}
	if len(input.ComplaintCaseTypeIDs) == 0 {
		return apperror.Validation("at least one complaint case type is required")
	}
	return nil
}

func (s *ComplaintServiceImpl) GetComplaint(ctx context.Context, id string) (*Complaint, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, oid)
}

func (s *ComplaintServiceImpl) GetByNumber(ctx context.Context, number string) (*Complaint, error) {
	return s.Repo.FindByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
}

// Track builds the customer view of a complaint: status label and public responses only
func (s *ComplaintServiceImpl) Track(ctx context.Context, number string) (*TrackingView, error) {
	c, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	responses, err := s.ResponseRepo.ListByComplaint(ctx, c.ID, false)
	if err != nil {
		return nil, err
	}
	return &TrackingView{
		ComplaintNumber:   c.ComplaintNumber,
		Status:            c.Status,
		StatusLabel:       CustomerStatus(c.Status),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		ResolvedAt:        c.ResolvedAt,
		ResolutionSummary: c.ResolutionSummary,
		FeedbackSubmitted: c.FeedbackSubmittedAt != nil,
		Responses:         responses,
	}, nil
}

var sortableFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"priority":         true,
	"status":           true,
	"complaint_number": true,
}

func (s *ComplaintServiceImpl) ListComplaints(ctx context.Context, filter ListFilter, page, limit int64) ([]Complaint, int64, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("%w: %q", apperror.ErrInvalidStatus, filter.Status)
	}
	if filter.SortBy != "" && !sortableFields[filter.SortBy] {
		return nil, 0, apperror.Validation("cannot sort by %q", filter.SortBy)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(ctx, filter, page, limit)
}

// Transition moves a complaint to any status of the fixed set. Moving to the
// current status is a no-op. The first move into resolved or closed stamps
// resolved_at and resolved_by and deactivates the active assignment record.
func (s *ComplaintServiceImpl) Transition(ctx context.Context, id string, target string, actor models.Actor) (*Complaint, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := ParseStatus(target)
	if err != nil {
		return nil, err
	}

	if status == c.Status {
		return c, nil
	}

	now := s.now()
	set := bson.M{
		"status":     status,
		"updated_at": now,
	}
	if status.IsTerminal() && c.ResolvedAt == nil {
		set["resolved_at"] = now
		set["resolved_by"] = actor.Ref()
	}

	updated, err := s.Repo.Update(ctx, c.ID, set)
	if err != nil {
		return nil, err
	}
	metrics.StatusTransitions.WithLabelValues(string(c.Status), string(status)).Inc()

	s.appendHistory(ctx, &HistoryEntry{
		ComplaintID: c.ID,
		Action:      ActionStatusChanged,
		OldValue:    string(c.Status),
		NewValue:    string(status),
		CreatedBy:   actor.Label(),
	})

	// Entering resolved or closed releases the assignee's capacity
	if status.IsTerminal() && !c.Status.IsTerminal() {
		if err := s.Assignments.CloseActive(ctx, c.ID, actor); err != nil {
			s.Log.Error("Failed to deactivate assignment on transition",
				zap.String("complaint_id", c.ID.Hex()),
				zap.String("to", string(status)),
				zap.Error(err))
		}
	}

	label := CustomerStatus(status)
	s.notifyCustomer(ctx, updated, notification.TemplateStatusUpdate, map[string]string{
		"status":             label.Key,
		"status_label":       label.Label,
		"status_description": label.Description,
		"status_color":       label.Color,
	})

	s.Log.Info("Complaint status changed",
		zap.String("complaint_id", c.ID.Hex()),
		zap.String("actor_id", actor.Label()),
		zap.String("from", string(c.Status)),
		zap.String("to", string(status)))
	return updated, nil
}

// AcknowledgeWithReplacement confirms the complaint together with the agreed
// replacement. It may be repeated regardless of the current status.
func (s *ComplaintServiceImpl) AcknowledgeWithReplacement(ctx context.Context, id string, qty *int, hybrid string, actor models.Actor) (*Complaint, error) {
	hybrid = strings.TrimSpace(hybrid)
	if qty == nil || hybrid == "" {
		return nil, apperror.Validation("replacement_qty and replacement_hybrid are required")
	}
	if *qty <= 0 {
		return nil, apperror.Validation("replacement_qty must be positive")
	}

	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.Update(ctx, c.ID, bson.M{
		"status":                          StatusAcknowledged,
		"acknowledged_replacement_qty":    *qty,
		"acknowledged_replacement_hybrid": hybrid,
		"updated_at":                      s.now(),
	})
	if err != nil {
		return nil, err
	}
	if c.Status != StatusAcknowledged {
		metrics.StatusTransitions.WithLabelValues(string(c.Status), string(StatusAcknowledged)).Inc()
	}

	s.appendHistory(ctx, &HistoryEntry{
		ComplaintID: c.ID,
		Action:      ActionAcknowledgedWithReplacement,
		OldValue:    string(c.Status),
		NewValue:    string(StatusAcknowledged),
		CreatedBy:   actor.Label(),
		Notes:       fmt.Sprintf("Penggantian: %d unit %s", *qty, hybrid),
	})

	s.notifyCustomer(ctx, updated, notification.TemplateComplaintAcknowledged, map[string]string{
		"replacement_qty":    strconv.Itoa(*qty),
		"replacement_hybrid": hybrid,
	})
	return updated, nil
}

// Resolve closes out a complaint with its resolution text. The assignee's
// metrics receive the resolution time and rating, and the active assignment
// record is deactivated.
func (s *ComplaintServiceImpl) Resolve(ctx context.Context, id string, input ResolveInput, actor models.Actor) (*Complaint, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsResolved() {
		return nil, fmt.Errorf("%w: complaint is %s", apperror.ErrAlreadyResolved, c.Status)
	}
	if strings.TrimSpace(input.Resolution) == "" {
		return nil, apperror.Validation("resolution is required")
	}
	if input.SatisfactionRating != nil && (*input.SatisfactionRating < 1 || *input.SatisfactionRating > 5) {
		return nil, apperror.Validation("satisfaction_rating must be between 1 and 5")
	}

	now := s.now()
	set := bson.M{
		"status":             StatusResolved,
		"resolved_at":        now,
		"resolved_by":        actor.Ref(),
		"resolution":         input.Resolution,
		"resolution_summary": input.ResolutionSummary,
		"updated_at":         now,
	}
	if input.SatisfactionRating != nil {
		set["customer_satisfaction_rating"] = *input.SatisfactionRating
	}

	updated, err := s.Repo.Update(ctx, c.ID, set)
	if err != nil {
		return nil, err
	}
	metrics.StatusTransitions.WithLabelValues(string(c.Status), string(StatusResolved)).Inc()

	s.appendHistory(ctx, &HistoryEntry{
		ComplaintID: c.ID,
		Action:      ActionResolved,
		OldValue:    string(c.Status),
		NewValue:    string(StatusResolved),
		CreatedBy:   actor.Label(),
		Notes:       input.ResolutionSummary,
	})

	if c.IsAssigned() {
		hours := now.Sub(c.CreatedAt).Hours()
		if err := s.StaffMetrics.ReportResolution(ctx, *c.AssignedTo, hours, input.SatisfactionRating); err != nil {
			s.Log.Error("Failed to report staff resolution metrics",
				zap.String("complaint_id", c.ID.Hex()),
				zap.String("staff_id", *c.AssignedTo),
				zap.Error(err))
		}
	}
	if err := s.Assignments.CloseActive(ctx, c.ID, actor); err != nil {
		s.Log.Error("Failed to deactivate assignment on resolve", zap.String("complaint_id", c.ID.Hex()), zap.Error(err))
	}

	s.notifyCustomer(ctx, updated, notification.TemplateComplaintResolved, map[string]string{
		"resolution_summary": input.ResolutionSummary,
	})
	return updated, nil
}

// SubmitFeedback stores the customer's rating and leaves an internal note for staff
func (s *ComplaintServiceImpl) SubmitFeedback(ctx context.Context, id string, input FeedbackInput) (*Complaint, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordFeedback(ctx, c, input)
}

// SubmitFeedbackByNumber is SubmitFeedback for customers, who only know the tracking number
func (s *ComplaintServiceImpl) SubmitFeedbackByNumber(ctx context.Context, number string, input FeedbackInput) (*Complaint, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	c, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.recordFeedback(ctx, c, input)
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperror.Validation("rating must be between 1 and 5")
	}
	return nil
}

func (s *ComplaintServiceImpl) recordFeedback(ctx context.Context, c *Complaint, input FeedbackInput) (*Complaint, error) {
	now := s.now()
	rating := input.Rating
	quickAnswers := input.QuickAnswers
	if quickAnswers == nil {
		quickAnswers = []string{}
	}
	updated, err := s.Repo.Update(ctx, c.ID, bson.M{
		"customer_satisfaction_rating": rating,
		"customer_feedback":            input.Feedback,
		"feedback_quick_answers":       quickAnswers,
		"feedback_submitted_at":        now,
		"updated_at":                   now,
	})
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Pelanggan memberikan penilaian %d/5", rating)
	if len(input.QuickAnswers) > 0 {
		note += " (" + strings.Join(input.QuickAnswers, ", ") + ")"
	}
	if input.Feedback != "" {
		note += ": " + input.Feedback
	}

	if err := s.ResponseRepo.Create(ctx, &Response{
		ComplaintID: c.ID,
		Message:     note,
		IsInternal:  true,
		CreatedBy:   "customer",
		CreatedAt:   now,
	}); err != nil {
		s.Log.Error("Failed to add feedback note", zap.String("complaint_id", c.ID.Hex()), zap.Error(err))
	}
	s.appendHistory(ctx, &HistoryEntry{
		ComplaintID: c.ID,
		Action:      ActionInternalNoteAdded,
		NewValue:    strconv.Itoa(rating),
		CreatedBy:   "customer",
		Notes:       note,
	})

	return updated, nil
}

// Escalate flags a complaint for supervisor attention
func (s *ComplaintServiceImpl) Escalate(ctx context.Context, id string, reason string, actor models.Actor) (*Complaint, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsResolved() {
		return nil, fmt.Errorf("%w: complaint is %s", apperror.ErrAlreadyResolved, c.Status)
	}
	if c.Escalated {
		return nil, apperror.Validation("complaint is already escalated")
	}

	now := s.now()
	updated, err := s.Repo.Update(ctx, c.ID, bson.M{
		"escalated":         true,
		"escalated_at":      now,
		"escalation_reason": reason,
		"updated_at":        now,
	})
	if err != nil {
		return nil, err
	}

	s.appendHistory(ctx, &HistoryEntry{
		ComplaintID: c.ID,
		Action:      ActionEscalated,
		OldValue:    "false",
		NewValue:    "true",
		CreatedBy:   actor.Label(),
		Notes:       reason,
	})
	return updated, nil
}

// AddResponse records a staff reply. The first customer-visible reply stamps first_response_at.
func (s *ComplaintServiceImpl) AddResponse(ctx context.Context, id string, message string, internal bool, actor models.Actor) (*Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.Validation("message is required")
	}

	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := &Response{
		ComplaintID: c.ID,
		Message:     message,
		IsInternal:  internal,
		CreatedBy:   actor.Label(),
		CreatedAt:   now,
	}
	if err := s.ResponseRepo.Create(ctx, resp); err != nil {
		return nil, err
	}

	if internal {
		s.appendHistory(ctx, &HistoryEntry{
			ComplaintID: c.ID,
			Action:      ActionInternalNoteAdded,
			CreatedBy:   actor.Label(),
			Notes:       message,
		})
		return resp, nil
	}

	set := bson.M{"updated_at": now}
	if c.FirstResponseAt == nil {
		set["first_response_at"] = now
	}
	updated, err := s.Repo.Update(ctx, c.ID, set)
	if err != nil {
		s.Log.Error("Failed to stamp response time", zap.String("complaint_id", c.ID.Hex()), zap.Error(err))
		updated = c
	}

	s.appendHistory(ctx, &HistoryEntry{
		ComplaintID: c.ID,
		Action:      ActionResponseAdded,
		CreatedBy:   actor.Label(),
		Notes:       message,
	})

	s.notifyCustomer(ctx, updated, notification.TemplateResponseAdded, map[string]string{
		"message": message,
	})
	return resp, nil
}

func (s *ComplaintServiceImpl) ListResponses(ctx context.Context, id string, includeInternal bool) ([]Response, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ResponseRepo.ListByComplaint(ctx, c.ID, includeInternal)
}

func (s *ComplaintServiceImpl) GetHistory(ctx context.Context, id string) ([]HistoryEntry, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.HistoryRepo.ListByComplaint(ctx, c.ID)
}

// History failures never undo the mutation that was already stored
func (s *ComplaintServiceImpl) appendHistory(ctx context.Context, entry *HistoryEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.HistoryRepo.Append(ctx, entry); err != nil {
		s.Log.Error("Failed to append complaint history",
			zap.String("complaint_id", entry.ComplaintID.Hex()),
			zap.String("action", string(entry.Action)),
			zap.Error(err))
	}
}

// notifyCustomer sends the template over email and WhatsApp
func (s *ComplaintServiceImpl) notifyCustomer(ctx context.Context, c *Complaint, tmpl notification.TemplateType, extra map[string]string) {
	vars := map[string]string{
		"complaint_id":     c.ID.Hex(),
		"complaint_number": c.ComplaintNumber,
		"customer_name":    c.CustomerName,
		"tracking_url":     s.TrackingURL + c.ComplaintNumber,
	}
	for k, v := range extra {
		vars[k] = v
	}

	s.Notifier.Send(ctx, notification.Message{
		Channel:   notification.ChannelEmail,
		Template:  tmpl,
		Recipient: c.CustomerEmail,
		Variables: vars,
	})
	s.Notifier.Send(ctx, notification.Message{
		Channel:   notification.ChannelWhatsApp,
		Template:  tmpl,
		Recipient: c.CustomerPhone,
		Variables: vars,
	})
}
