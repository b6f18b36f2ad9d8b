package ingest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrUndecodable         = errors.New("compressed file could not be decoded")
)

// DuplicateError reports an upload whose fingerprint is already stored.
type DuplicateError struct {
	LogID uuid.UUID
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("file already uploaded as log %s", e.LogID)
}
