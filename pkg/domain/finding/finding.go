package finding

import (
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finding is a persisted rule match. The category column keeps its
// historical name, error_type. Position is the match's index in the
// classifier output and orders findings that share a line.
type Finding struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LogID      uuid.UUID      `json:"log_id" gorm:"type:uuid;not null;index"`
	Category   string         `json:"category" gorm:"column:error_type;type:text;not null"`
	Message    string         `json:"message" gorm:"type:text;not null"`
	LineNumber int            `json:"line_number"`
	Position   int            `json:"-" gorm:"not null;default:0"`
	Severity   rules.Severity `json:"severity" gorm:"type:text;not null"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (f *Finding) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return nil
}

func (f *Finding) TableName() string {
	return "errors"
}

type CategoryCount struct {
	Category string `json:"category" gorm:"column:error_type"`
	Count    int64  `json:"count"`
}

type SeverityCount struct {
	Severity rules.Severity `json:"severity"`
	Count    int64          `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalErrors          int64           `json:"total_errors"`
	ErrorDistribution    []CategoryCount `json:"error_distribution"`
	SeverityDistribution []SeverityCount `json:"severity_distribution"`
}
