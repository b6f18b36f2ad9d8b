package telemetry

import (
	"context"
)

// Exporter ships classification results to an external sink.
type Exporter interface {
	Name() string
	ValidateConfig(settings map[string]interface{}) error
	Handle(ctx context.Context, evt ClassificationEvent) error
	WithSettings(settings map[string]interface{}) (Exporter, error)
	Close()
}
