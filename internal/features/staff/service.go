package staff

import (
	"context"
	"strings"

	"seedcare/internal/common/apperror"

	"go.uber.org/zap"
)

type StaffService interface {
	CreateProfile(ctx context.Context, profile *Profile) error
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	ListProfiles(ctx context.Context, filter ListFilter) ([]Profile, error)
	// ReportResolution hands one resolved complaint to the store-side metric aggregates
	ReportResolution(ctx context.Context, userID string, resolutionHours float64, rating *int) error
}

type StaffServiceImpl struct {
	repo StaffRepository
	log  *zap.Logger
}

func NewStaffService(repo StaffRepository, log *zap.Logger) StaffService {
	return &StaffServiceImpl{
		repo: repo,
		log:  log,
	}
}

func (s *StaffServiceImpl) CreateProfile(ctx context.Context, profile *Profile) error {
	profile.UserID = strings.TrimSpace(profile.UserID)
	profile.Department = strings.TrimSpace(profile.Department)
	if profile.UserID == "" {
		return apperror.Validation("user_id is required")
	}
	if profile.FullName == "" {
		return apperror.Validation("full_name is required")
	}
	if profile.Department == "" {
		return apperror.Validation("department is required")
	}
	if profile.MaxAssignedComplaints < 0 {
		return apperror.Validation("max_assigned_complaints must be >= 0")
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return err
	}
	s.log.Info("Staff profile created", zap.String("user_id", profile.UserID), zap.String("department", profile.Department))
	return nil
}

func (s *StaffServiceImpl) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	if update.MaxAssignedComplaints != nil && *update.MaxAssignedComplaints < 0 {
		return nil, apperror.Validation("max_assigned_complaints must be >= 0")
	}
	return s.repo.Update(ctx, userID, update)
}

func (s *StaffServiceImpl) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *StaffServiceImpl) ListProfiles(ctx context.Context, filter ListFilter) ([]Profile, error) {
	return s.repo.List(ctx, filter)
}

func (s *StaffServiceImpl) ReportResolution(ctx context.Context, userID string, resolutionHours float64, rating *int) error {
	if resolutionHours < 0 {
		resolutionHours = 0
	}
	return s.repo.RecordResolution(ctx, userID, resolutionHours, rating)
}
