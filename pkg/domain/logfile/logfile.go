package logfile

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// LogFile is an uploaded log and its processing state.
type LogFile struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName      string         `json:"file_name" gorm:"type:text;not null"`
	FileHash      string         `json:"file_hash" gorm:"type:text;not null;uniqueIndex"`
	FileSize      int            `json:"file_size" gorm:"not null"`
	Content       string         `json:"-" gorm:"type:text;not null"`
	UploadedBy    string         `json:"uploaded_by" gorm:"type:text"`
	Status        Status         `json:"status" gorm:"type:text;not null;default:processing"`
	FailureReason string         `json:"failure_reason,omitempty" gorm:"type:text"`
	Categories    pq.StringArray `json:"categories" gorm:"type:text[]"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (l *LogFile) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = StatusProcessing
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

func (l *LogFile) BeforeUpdate(tx *gorm.DB) error {
	l.UpdatedAt = time.Now()
	return nil
}

func (l *LogFile) TableName() string {
	return "logs"
}

// Stats aggregates file counts by status.
type Stats struct {
	TotalFiles     int64   `json:"total_files"`
	CompletedFiles int64   `json:"completed_files"`
	FailedFiles    int64   `json:"failed_files"`
	SuccessRate    float64 `json:"success_rate"`
}

// WithErrorCount is a list row carrying its finding count.
type WithErrorCount struct {
	LogFile
	ErrorCount int64 `json:"error_count"`
}
