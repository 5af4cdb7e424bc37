package observation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/common/models"
	"seedcare/internal/features/complaint"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ObservationService records the fact-finding stages of a complaint
type ObservationService interface {
	SaveObservation(ctx context.Context, complaintID string, record *ObservationRecord, actor models.Actor) (*ObservationView, error)
	GetObservation(ctx context.Context, complaintID string) (*ObservationView, error)
	SaveInvestigation(ctx context.Context, complaintID string, record *InvestigationRecord, actor models.Actor) (*InvestigationRecord, error)
	GetInvestigation(ctx context.Context, complaintID string) (*InvestigationRecord, error)
	SaveLabTesting(ctx context.Context, complaintID string, record *LabTestingRecord, actor models.Actor) (*LabTestingRecord, error)
	GetLabTesting(ctx context.Context, complaintID string) (*LabTestingRecord, error)
}

type ObservationServiceImpl struct {
	Repo          ObservationRepository
	ComplaintRepo complaint.ComplaintRepository
	HistoryRepo   complaint.HistoryRepository
	Log           *zap.Logger
	Now           func() time.Time
}

func NewObservationService(
	repo ObservationRepository,
	complaintRepo complaint.ComplaintRepository,
	historyRepo complaint.HistoryRepository,
	log *zap.Logger,
) ObservationService {
	return &ObservationServiceImpl{
		Repo:          repo,
		ComplaintRepo: complaintRepo,
		HistoryRepo:   historyRepo,
		Log:           log,
		Now:           time.Now,
	}
}

func (s *ObservationServiceImpl) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *ObservationServiceImpl) load(ctx context.Context, id string) (*complaint.Complaint, error) {
	oid, err := complaint.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.ComplaintRepo.FindByID(ctx, oid)
}

// SaveObservation replaces the complaint's observation. A valid observation
// with a replacement proposal fills the complaint's replacement fields when
// they are still empty.
func (s *ObservationServiceImpl) SaveObservation(ctx context.Context, complaintID string, record *ObservationRecord, actor models.Actor) (*ObservationView, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record.ID = primitive.NilObjectID
	record.ComplaintID = c.ID
	record.UpdatedBy = actor.Label()
	record.UpdatedAt = now
	record.CreatedAt = now
	if existing, err := s.Repo.FindObservation(ctx, c.ID); err == nil {
		record.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if id, ok := actor.ID(); ok && record.ObserverID == "" {
		record.ObserverID = id
	}

	if err := s.Repo.UpsertObservation(ctx, record); err != nil {
		return nil, err
	}

	summary := Summarize(record)
	s.appendHistory(ctx, c.ID, complaint.ActionObservationRecorded, string(summary.Status), summary.ShortSummary, actor)

	if summary.Status == SummaryValid && summary.ReplacementProposal != nil &&
		c.AcknowledgedReplacementQty == nil && c.AcknowledgedReplacementHybrid == "" {
		_, err := s.ComplaintRepo.Update(ctx, c.ID, bson.M{
			"acknowledged_replacement_qty":    *record.ReplacementQty,
			"acknowledged_replacement_hybrid": strings.TrimSpace(record.ReplacementHybrid),
			"updated_at":                      now,
		})
		if err != nil {
			return nil, err
		}
	}

	s.Log.Info("Observation recorded",
		zap.String("complaint_id", c.ID.Hex()),
		zap.String("actor_id", actor.Label()),
		zap.String("result", string(summary.Status)),
		zap.Int("issues", summary.TotalIssuesFound))

	return &ObservationView{Record: record, Summary: summary}, nil
}

// GetObservation returns a Pending summary when nothing was recorded yet
func (s *ObservationServiceImpl) GetObservation(ctx context.Context, complaintID string) (*ObservationView, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	record, err := s.Repo.FindObservation(ctx, c.ID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &ObservationView{Summary: Summarize(nil)}, nil
		}
		return nil, err
	}
	return &ObservationView{Record: record, Summary: Summarize(record)}, nil
}

func (s *ObservationServiceImpl) SaveInvestigation(ctx context.Context, complaintID string, record *InvestigationRecord, actor models.Actor) (*InvestigationRecord, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record.ID = primitive.NilObjectID
	record.ComplaintID = c.ID
	record.UpdatedBy = actor.Label()
	record.UpdatedAt = now
	record.CreatedAt = now
	if existing, err := s.Repo.FindInvestigation(ctx, c.ID); err == nil {
		record.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if id, ok := actor.ID(); ok && record.InvestigatorID == "" {
		record.InvestigatorID = id
	}

	if err := s.Repo.UpsertInvestigation(ctx, record); err != nil {
		return nil, err
	}
	s.appendHistory(ctx, c.ID, complaint.ActionInvestigationRecorded, record.Conclusion, record.RootCause, actor)
	return record, nil
}

func (s *ObservationServiceImpl) GetInvestigation(ctx context.Context, complaintID string) (*InvestigationRecord, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindInvestigation(ctx, c.ID)
}

func (s *ObservationServiceImpl) SaveLabTesting(ctx context.Context, complaintID string, record *LabTestingRecord, actor models.Actor) (*LabTestingRecord, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record.ID = primitive.NilObjectID
	record.ComplaintID = c.ID
	record.UpdatedBy = actor.Label()
	record.UpdatedAt = now
	record.CreatedAt = now
	if existing, err := s.Repo.FindLabTesting(ctx, c.ID); err == nil {
		record.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if id, ok := actor.ID(); ok && record.TesterID == "" {
		record.TesterID = id
	}

	if err := s.Repo.UpsertLabTesting(ctx, record); err != nil {
		return nil, err
	}
	s.appendHistory(ctx, c.ID, complaint.ActionLabTestingRecorded, record.Conclusion, labNote(record), actor)
	return record, nil
}

func (s *ObservationServiceImpl) GetLabTesting(ctx context.Context, complaintID string) (*LabTestingRecord, error) {
	c, err := s.load(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindLabTesting(ctx, c.ID)
}

func labNote(r *LabTestingRecord) string {
	if r.MarketSampleGermination == nil || r.GuardSampleGermination == nil {
		return ""
	}
	return fmt.Sprintf("Daya tumbuh sampel pasar %.1f%%, sampel arsip %.1f%%", *r.MarketSampleGermination, *r.GuardSampleGermination)
}

func (s *ObservationServiceImpl) appendHistory(ctx context.Context, complaintID primitive.ObjectID, action complaint.HistoryAction, value, notes string, actor models.Actor) {
	entry := &complaint.HistoryEntry{
		ComplaintID: complaintID,
		Action:      action,
		NewValue:    value,
		Notes:       notes,
		CreatedBy:   actor.Label(),
		CreatedAt:   s.now(),
	}
	if err := s.HistoryRepo.Append(ctx, entry); err != nil {
		s.Log.Error("Failed to append complaint history",
			zap.String("complaint_id", entry.ComplaintID.Hex()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
