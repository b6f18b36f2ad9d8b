package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Type string

const (
	TypeErrorAlert         Type = "error_alert"
	TypeDailySummary       Type = "daily_summary"
	TypeProcessingComplete Type = "processing_complete"
)

type Notification struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    string     `json:"user_id" gorm:"type:text"`
	Type      Type       `json:"type" gorm:"type:text;not null"`
	Message   string     `json:"message" gorm:"type:text;not null"`
	Sent      bool       `json:"sent" gorm:"not null;default:false"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	return nil
}

func (n *Notification) TableName() string {
	return "notifications"
}
