package telemetry

import "github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"

type ExporterLocatorOption func(*ExporterLocator)

func WithExporter(exporter telemetry.Exporter) ExporterLocatorOption {
	return func(el *ExporterLocator) {
		el.exporters[exporter.Name()] = exporter
	}
}
