package complaint

import (
	"fmt"

	"seedcare/internal/common/apperror"
)

type Status string

const (
	StatusSubmitted       Status = "submitted"
	StatusAcknowledged    Status = "acknowledged"
	StatusObservation     Status = "observation"
	StatusInvestigation   Status = "investigation"
	StatusDecision        Status = "decision"
	StatusPendingResponse Status = "pending_response"
	StatusResolved        Status = "resolved"
	StatusClosed          Status = "closed"
)

// Statuses in workflow order. Any of them is an accepted transition target.
var Statuses = []Status{
	StatusSubmitted,
	StatusAcknowledged,
	StatusObservation,
	StatusInvestigation,
	StatusDecision,
	StatusPendingResponse,
	StatusResolved,
	StatusClosed,
}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal is true for resolved and closed
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidStatus, s)
	}
	return status, nil
}

// StatusLabel is the customer-facing rendering of a status
type StatusLabel struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

const customerInvestigating = "investigating"

var customerStatusLabels = map[string]StatusLabel{
	string(StatusSubmitted): {
		Key:         string(StatusSubmitted),
		Label:       "Dikirim",
		Description: "Keluhan Anda telah kami terima dan sedang menunggu konfirmasi tim kami.",
		Color:       "#6B7280",
	},
	string(StatusAcknowledged): {
		Key:         string(StatusAcknowledged),
		Label:       "Dikonfirmasi",
		Description: "Keluhan Anda telah dikonfirmasi dan akan segera ditindaklanjuti.",
		Color:       "#2563EB",
	},
	customerInvestigating: {
		Key:         customerInvestigating,
		Label:       "Sedang Diselidiki",
		Description: "Tim kami sedang melakukan observasi dan investigasi atas keluhan Anda.",
		Color:       "#D97706",
	},
	string(StatusPendingResponse): {
		Key:         string(StatusPendingResponse),
		Label:       "Menunggu Respons Anda",
		Description: "Kami membutuhkan informasi tambahan dari Anda untuk melanjutkan penanganan.",
		Color:       "#9333EA",
	},
	string(StatusResolved): {
		Key:         string(StatusResolved),
		Label:       "Selesai",
		Description: "Keluhan Anda telah selesai ditangani. Terima kasih atas kesabaran Anda.",
		Color:       "#16A34A",
	},
	string(StatusClosed): {
		Key:         string(StatusClosed),
		Label:       "Ditutup",
		Description: "Keluhan Anda telah ditutup dan diarsipkan.",
		Color:       "#374151",
	},
}

// CustomerStatus returns the label shown to customers. The three internal
// fact-finding stages share the "investigating" entry.
func CustomerStatus(s Status) StatusLabel {
	switch s {
	case StatusObservation, StatusInvestigation, StatusDecision:
		return customerStatusLabels[customerInvestigating]
	}
	if label, ok := customerStatusLabels[string(s)]; ok {
		return label
	}
	return StatusLabel{Key: string(s), Label: string(s), Color: "#6B7280"}
}

// AdvanceStatusForDepartment applies the routing rule: sending a complaint to a
// fact-finding department moves it to the matching stage, but only from the
// listed source statuses.
func AdvanceStatusForDepartment(department string, current Status) (Status, bool) {
	switch department {
	case "observasi":
		if current == StatusAcknowledged {
			return StatusObservation, true
		}
	case "investigasi_1", "investigasi_2", "lab_tasting":
		if current == StatusObservation || current == StatusAcknowledged {
			return StatusInvestigation, true
		}
	}
	return current, false
}
