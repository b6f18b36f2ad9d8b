package response

import (
	"github.com/NeuralTrust/TakeALook/pkg/classifier"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
)

// UploadOutput is the stored log plus its severity summary. Without
// waiting the summary is zero and the status is processing.
type UploadOutput struct {
	logfile.LogFile
	Status  logfile.Status    `json:"status"`
	Summary classifier.Counts `json:"summary"`
	Lines   int               `json:"lines,omitempty"`
}

type DuplicateOutput struct {
	Message string `json:"message"`
	LogID   string `json:"log_id"`
}
