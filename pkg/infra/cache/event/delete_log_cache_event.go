package event

// DeleteLogCacheEvent is broadcast after a log is deleted so every instance
// forgets its fingerprint.
type DeleteLogCacheEvent struct {
	LogID    string `json:"log_id"`
	FileHash string `json:"file_hash"`
}

func (e DeleteLogCacheEvent) Type() string {
	return DeleteLogCacheEventType
}
