package response

import (
	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
)

type LogDetailOutput struct {
	logfile.LogFile
	Errors []finding.Finding `json:"errors"`
}

type ListLogsOutput struct {
	Logs  []logfile.WithErrorCount `json:"logs"`
	Count int                      `json:"count"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}
