package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeTask    NotificationType = "task"
	NotificationTypeSLA     NotificationType = "sla"
)

// Notification is an in-app message shown to a staff member
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	IsRead    bool               `bson:"is_read" json:"is_read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ReadAt    *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}

// Channel is a customer delivery channel
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// TemplateType names the customer message template
type TemplateType string

const (
	TemplateComplaintReceived     TemplateType = "complaint_received"
	TemplateStatusUpdate          TemplateType = "status_update"
	TemplateComplaintAcknowledged TemplateType = "complaint_acknowledged"
	TemplateComplaintResolved     TemplateType = "complaint_resolved"
	TemplateResponseAdded         TemplateType = "response_added"
)

// Message is one customer notification request
type Message struct {
	Channel   Channel
	Template  TemplateType
	Recipient string
	Variables map[string]string
}
