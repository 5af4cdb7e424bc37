package digest

import (
	"time"

	"seedcare/internal/features/analytics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
)

// Snapshot is one scheduled analytics run kept for trend browsing
type Snapshot struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PeriodDays int                `bson:"period_days" json:"period_days"`
	Trigger    string             `bson:"trigger" json:"trigger"` // schedule or manual
	Status     RunStatus          `bson:"status" json:"status"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	StartedAt  time.Time          `bson:"started_at" json:"started_at"`
	FinishedAt time.Time          `bson:"finished_at" json:"finished_at"`
	Report     *analytics.Report  `bson:"report,omitempty" json:"report,omitempty"`
}
