package telemetry

import "time"

type CategoryTotal struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// ClassificationEvent summarises one processed log.
type ClassificationEvent struct {
	LogID       string          `json:"log_id"`
	FileName    string          `json:"file_name"`
	FileHash    string          `json:"file_hash"`
	Status      string          `json:"status"`
	Reason      string          `json:"reason,omitempty"`
	Lines       int             `json:"lines"`
	Low         int             `json:"low"`
	Medium      int             `json:"medium"`
	Critical    int             `json:"critical"`
	Categories  []CategoryTotal `json:"categories"`
	RuleVersion string          `json:"rule_version"`
	DurationMs  int64           `json:"duration_ms"`
	ProcessedAt time.Time       `json:"processed_at"`
}
