package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error taxonomy shared by the complaint engines. Callers wrap these with
// fmt.Errorf("%w: ...") to add context and match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrAlreadyResolved   = errors.New("complaint already resolved")
	ErrAlreadyAssigned   = errors.New("complaint already assigned")
	ErrTargetNotEligible = errors.New("assignment target not eligible")
	ErrNoEligibleStaff   = errors.New("no eligible staff")
	ErrCreationFailed    = errors.New("creation failed")
	ErrUnauthorized      = errors.New("unauthorized")
)

// NoEligibleStaffReason tells an operator which remedy applies.
type NoEligibleStaffReason string

const (
	ReasonNoActiveStaff NoEligibleStaffReason = "no_active_staff"
	ReasonAllAtCapacity NoEligibleStaffReason = "all_at_capacity"
)

// NoEligibleStaffError is returned by auto-assignment when nobody can take the complaint
type NoEligibleStaffError struct {
	Department string
	Reason     NoEligibleStaffReason
	Candidates int
}

func (e *NoEligibleStaffError) Error() string {
	switch e.Reason {
	case ReasonNoActiveStaff:
		return fmt.Sprintf("no eligible staff: department %q has no active staff", e.Department)
	case ReasonAllAtCapacity:
		return fmt.Sprintf("no eligible staff: all %d staff in department %q are at capacity", e.Candidates, e.Department)
	}
	return fmt.Sprintf("no eligible staff in department %q", e.Department)
}

func (e *NoEligibleStaffError) Unwrap() error {
	return ErrNoEligibleStaff
}

// NotFound builds an ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// Validation builds an ErrValidation with a descriptive message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsNoEligibleStaff reports whether err carries a NoEligibleStaffError.
func IsNoEligibleStaff(err error) (*NoEligibleStaffError, bool) {
	var target *NoEligibleStaffError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// HTTPStatus maps an engine error to the status code returned by the API.
// Unknown errors are internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrAlreadyResolved), errors.Is(err, ErrAlreadyAssigned), errors.Is(err, ErrNoEligibleStaff):
		return fiber.StatusConflict
	case errors.Is(err, ErrTargetNotEligible):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrCreationFailed):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// PublicMessage returns the message safe to show to API clients.
func PublicMessage(err error) string {
	if HTTPStatus(err) == fiber.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
