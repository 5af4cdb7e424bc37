package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/common/models"
	"seedcare/internal/features/complaint"
	"seedcare/internal/features/notification"
	"seedcare/internal/features/staff"
	"seedcare/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// InAppNotifier delivers in-app notifications to staff members
type InAppNotifier interface {
	CreateNotification(ctx context.Context, userID, title, message string, notifType notification.NotificationType, link string) error
}

type AssignmentService interface {
	Assign(ctx context.Context, complaintID string, input AssignInput, actor models.Actor) (*AssignResult, error)
	AutoAssign(ctx context.Context, complaintID string, input AutoAssignInput) (*AssignResult, error)
	Unassign(ctx context.Context, complaintID string, actor models.Actor) (*complaint.Complaint, error)
	CloseActive(ctx context.Context, complaintID primitive.ObjectID, actor models.Actor) error
	ListAssignmentHistory(ctx context.Context, complaintID string) ([]Record, error)
	DepartmentWorkload(ctx context.Context, department string) (*Workload, error)
}

type AssignmentServiceImpl struct {
	Repo          AssignmentRepository
	ComplaintRepo complaint.ComplaintRepository
	HistoryRepo   complaint.HistoryRepository
	StaffRepo     staff.StaffRepository
	Notifications InAppNotifier
	Log           *zap.Logger
	Now           func() time.Time
}

func NewAssignmentService(
	repo AssignmentRepository,
	complaintRepo complaint.ComplaintRepository,
	historyRepo complaint.HistoryRepository,
	staffRepo staff.StaffRepository,
	notifications InAppNotifier,
	log *zap.Logger,
) AssignmentService {
	return &AssignmentServiceImpl{
		Repo:          repo,
		ComplaintRepo: complaintRepo,
		HistoryRepo:   historyRepo,
		StaffRepo:     staffRepo,
		Notifications: notifications,
		Log:           log,
		Now:           time.Now,
	}
}

func (s *AssignmentServiceImpl) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *AssignmentServiceImpl) load(ctx context.Context, id string) (*complaint.Complaint, error) {
	oid, err := complaint.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.ComplaintRepo.FindByID(ctx, oid)
}

// Assign hands a complaint to a staff member chosen by a human. Sending it to a
// fact-finding department may advance its status.
func (s *AssignmentServiceImpl) Assign(ctx context.Context, complaintID string, input AssignInput, actor models.Actor) (*AssignResult, error) {
	staffID := strings.TrimSpace(input.StaffID)
	if staffID == "" {
		return nil, apperror.Validation("staff_id is required")
	}

	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if c.IsResolved() {
		return nil, fmt.Errorf("%w: complaint is %s", apperror.ErrAlreadyResolved, c.Status)
	}

	profile, err := s.StaffRepo.FindByUserID(ctx, staffID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff %s has no profile", apperror.ErrTargetNotEligible, staffID)
		}
		return nil, err
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("%w: staff %s is inactive", apperror.ErrTargetNotEligible, staffID)
	}

	department := strings.TrimSpace(input.Department)
	if department == "" {
		department = profile.Department
	}
	if department == "" {
		department = c.Department
	}

	status, advanced := complaint.AdvanceStatusForDepartment(department, c.Status)

	now := s.now()
	set := bson.M{
		"assigned_to": staffID,
		"assigned_at": now,
		"assigned_by": actor.Ref(),
		"department":  department,
		"updated_at":  now,
	}
	if advanced {
		set["status"] = status
	}

	reason := strings.TrimSpace(input.Reason)
	updated, err := s.commit(ctx, c.ID, set, &Record{
		ComplaintID:      c.ID,
		AssignedTo:       staffID,
		AssignedBy:       actor.Ref(),
		AssignmentReason: reason,
		PreviousAssignee: c.AssignedTo,
		Department:       department,
	}, actor, now)
	if err != nil {
		return nil, err
	}
	metrics.Assignments.WithLabelValues("manual").Inc()

	s.appendHistory(ctx, &complaint.HistoryEntry{
		ComplaintID: c.ID,
		Action:      complaint.ActionAssigned,
		OldValue:    deref(c.AssignedTo),
		NewValue:    staffID,
		CreatedBy:   actor.Label(),
		Notes:       reason,
	})
	if advanced {
		metrics.StatusTransitions.WithLabelValues(string(c.Status), string(status)).Inc()
		s.appendHistory(ctx, &complaint.HistoryEntry{
			ComplaintID: c.ID,
			Action:      complaint.ActionStatusChanged,
			OldValue:    string(c.Status),
			NewValue:    string(status),
			CreatedBy:   actor.Label(),
			Notes:       "Departemen: " + department,
		})
	}

	s.notifyAssignee(ctx, updated, staffID)

	s.Log.Info("Complaint assigned",
		zap.String("complaint_id", c.ID.Hex()),
		zap.String("actor_id", actor.Label()),
		zap.String("staff_id", staffID),
		zap.String("department", department))

	return &AssignResult{
		Complaint:        updated,
		AssigneeID:       staffID,
		AssigneeName:     profile.FullName,
		Department:       department,
		Status:           updated.Status,
		PreviousAssignee: c.AssignedTo,
		Reason:           reason,
	}, nil
}

// AutoAssign picks the least loaded active staff member of the department.
// It never overrides an existing owner and never changes the status.
func (s *AssignmentServiceImpl) AutoAssign(ctx context.Context, complaintID string, input AutoAssignInput) (*AssignResult, error) {
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, apperror.Validation("invalid priority %q", input.Priority)
	}

	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if c.IsAssigned() {
		return nil, fmt.Errorf("%w: complaint is owned by %s", apperror.ErrAlreadyAssigned, *c.AssignedTo)
	}
	if c.IsResolved() {
		return nil, fmt.Errorf("%w: complaint is %s", apperror.ErrAlreadyResolved, c.Status)
	}

	department := strings.TrimSpace(input.Department)
	if department == "" {
		department = c.Department
	}
	if department == "" {
		department = complaint.DefaultDepartment
	}

	profiles, err := s.StaffRepo.List(ctx, staff.ListFilter{Department: department, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	chosen, err := SelectCandidate(department, profiles)
	if err != nil {
		if nes, ok := apperror.IsNoEligibleStaff(err); ok {
			metrics.AutoAssignFailures.WithLabelValues(department, string(nes.Reason)).Inc()
			s.Log.Warn("Auto-assign found no eligible staff",
				zap.String("complaint_id", c.ID.Hex()),
				zap.String("department", department),
				zap.String("reason", string(nes.Reason)))
		}
		return nil, err
	}

	reason := fmt.Sprintf("Auto-assigned based on workload (%d/%d active complaints)",
		chosen.CurrentAssignedCount, chosen.MaxAssignedComplaints)

	now := s.now()
	set := bson.M{
		"assigned_to": chosen.UserID,
		"assigned_at": now,
		"assigned_by": models.SystemActor.Ref(),
		"department":  department,
		"updated_at":  now,
	}
	if input.Priority != "" {
		set["priority"] = input.Priority
	}

	updated, err := s.commit(ctx, c.ID, set, &Record{
		ComplaintID:      c.ID,
		AssignedTo:       chosen.UserID,
		AssignedBy:       models.SystemActor.Ref(),
		AssignmentReason: reason,
		Department:       department,
	}, models.SystemActor, now)
	if err != nil {
		return nil, err
	}
	metrics.Assignments.WithLabelValues("auto").Inc()

	s.appendHistory(ctx, &complaint.HistoryEntry{
		ComplaintID: c.ID,
		Action:      complaint.ActionAutoAssigned,
		NewValue:    chosen.UserID,
		CreatedBy:   models.SystemActor.Label(),
		Notes:       reason,
	})

	s.notifyAssignee(ctx, updated, chosen.UserID)

	s.Log.Info("Complaint auto-assigned",
		zap.String("complaint_id", c.ID.Hex()),
		zap.String("staff_id", chosen.UserID),
		zap.String("department", department))

	return &AssignResult{
		Complaint:    updated,
		AssigneeID:   chosen.UserID,
		AssigneeName: chosen.FullName,
		Department:   department,
		Status:       updated.Status,
		Reason:       reason,
	}, nil
}

// Unassign clears the owner and deactivates the active assignment record
func (s *AssignmentServiceImpl) Unassign(ctx context.Context, complaintID string, actor models.Actor) (*complaint.Complaint, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !c.IsAssigned() {
		return nil, apperror.Validation("complaint is not assigned")
	}

	now := s.now()
	previous, err := s.Repo.DeactivateActive(ctx, c.ID, actor.Ref(), now)
	if err != nil {
		return nil, err
	}

	updated, err := s.ComplaintRepo.Update(ctx, c.ID, bson.M{
		"assigned_to": nil,
		"assigned_at": nil,
		"assigned_by": nil,
		"updated_at":  now,
	})
	if err != nil {
		s.restore(ctx, c.ID, previous)
		return nil, err
	}
	metrics.Assignments.WithLabelValues("unassign").Inc()

	s.appendHistory(ctx, &complaint.HistoryEntry{
		ComplaintID: c.ID,
		Action:      complaint.ActionUnassigned,
		OldValue:    *c.AssignedTo,
		CreatedBy:   actor.Label(),
	})
	return updated, nil
}

// CloseActive is called when a complaint enters resolved or closed
func (s *AssignmentServiceImpl) CloseActive(ctx context.Context, complaintID primitive.ObjectID, actor models.Actor) error {
	_, err := s.Repo.DeactivateActive(ctx, complaintID, actor.Ref(), s.now())
	return err
}

func (s *AssignmentServiceImpl) ListAssignmentHistory(ctx context.Context, complaintID string) ([]Record, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByComplaint(ctx, c.ID)
}

func (s *AssignmentServiceImpl) DepartmentWorkload(ctx context.Context, department string) (*Workload, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, apperror.Validation("department is required")
	}

	profiles, err := s.StaffRepo.List(ctx, staff.ListFilter{Department: department, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	w := &Workload{Department: department, Staff: make([]StaffLoad, 0, len(profiles))}
	for _, p := range profiles {
		load := StaffLoad{
			UserID:                  p.UserID,
			FullName:                p.FullName,
			CurrentAssignedCount:    p.CurrentAssignedCount,
			MaxAssignedComplaints:   p.MaxAssignedComplaints,
			Available:               max(p.MaxAssignedComplaints-p.CurrentAssignedCount, 0),
			CustomerSatisfactionAvg: p.CustomerSatisfactionAvg,
		}
		if p.MaxAssignedComplaints > 0 {
			load.Utilization = float64(p.CurrentAssignedCount) / float64(p.MaxAssignedComplaints) * 100
		}
		if !p.HasCapacity() {
			w.AtCapacity++
		}
		w.TotalAssigned += p.CurrentAssignedCount
		w.TotalCapacity += p.MaxAssignedComplaints
		w.Staff = append(w.Staff, load)
	}
	return w, nil
}

// commit deactivates the current record before inserting the new one, so a
// complaint never has two active records, and then patches the complaint.
// A failure in either step undoes the record swap.
func (s *AssignmentServiceImpl) commit(ctx context.Context, complaintID primitive.ObjectID, set bson.M, record *Record, actor models.Actor, now time.Time) (*complaint.Complaint, error) {
	previous, err := s.Repo.DeactivateActive(ctx, complaintID, actor.Ref(), now)
	if err != nil {
		return nil, err
	}

	record.IsActive = true
	record.AssignedAt = now
	if err := s.Repo.Insert(ctx, record); err != nil {
		s.restore(ctx, complaintID, previous)
		return nil, err
	}

	updated, err := s.ComplaintRepo.Update(ctx, complaintID, set)
	if err != nil {
		if _, derr := s.Repo.DeactivateActive(ctx, complaintID, actor.Ref(), now); derr != nil {
			s.Log.Error("Failed to roll back assignment record",
				zap.String("complaint_id", complaintID.Hex()),
				zap.Error(derr))
		}
		s.restore(ctx, complaintID, previous)
		return nil, err
	}
	return updated, nil
}

func (s *AssignmentServiceImpl) restore(ctx context.Context, complaintID primitive.ObjectID, previous *Record) {
	if previous == nil {
		return
	}
	if err := s.Repo.Reactivate(ctx, previous.ID); err != nil {
		s.Log.Error("Failed to restore previous assignment record",
			zap.String("complaint_id", complaintID.Hex()),
			zap.String("staff_id", previous.AssignedTo),
			zap.Error(err))
	}
}

func (s *AssignmentServiceImpl) appendHistory(ctx context.Context, entry *complaint.HistoryEntry) {
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

func (s *AssignmentServiceImpl) notifyAssignee(ctx context.Context, c *complaint.Complaint, staffID string) {
	if s.Notifications == nil {
		return
	}
	title := "Komplain baru ditugaskan"
	message := fmt.Sprintf("Komplain %s dari %s ditugaskan kepada Anda", c.ComplaintNumber, c.CustomerName)
	link := "/complaints/" + c.ID.Hex()
	if err := s.Notifications.CreateNotification(ctx, staffID, title, message, notification.NotificationTypeTask, link); err != nil {
		s.Log.Warn("Failed to notify assignee",
			zap.String("complaint_id", c.ID.Hex()),
			zap.String("staff_id", staffID),
			zap.Error(err))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
