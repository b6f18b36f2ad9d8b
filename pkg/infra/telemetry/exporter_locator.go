package telemetry

import (
	"fmt"

	"github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"
)

type ExporterLocator struct {
	exporters map[string]telemetry.Exporter
}

func NewExporterLocator(opts ...ExporterLocatorOption) *ExporterLocator {
	el := &ExporterLocator{
		exporters: make(map[string]telemetry.Exporter),
	}
	for _, opt := range opts {
		opt(el)
	}
	return el
}

// GetExporter validates settings against the named prototype and returns a
// configured copy of it.
func (p *ExporterLocator) GetExporter(name string, settings map[string]interface{}) (telemetry.Exporter, error) {
	base, ok := p.exporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown exporter: %s", name)
	}
	if err := base.ValidateConfig(settings); err != nil {
		return nil, err
	}
	return base.WithSettings(settings)
}

func (p *ExporterLocator) ValidateExporter(name string, settings map[string]interface{}) error {
	base, ok := p.exporters[name]
	if !ok {
		return fmt.Errorf("unknown exporter: %s", name)
	}
	return base.ValidateConfig(settings)
}
