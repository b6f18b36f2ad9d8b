package telemetry

import (
	"fmt"

	domain "github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"
	factory "github.com/NeuralTrust/TakeALook/pkg/infra/telemetry"
	"github.com/sirupsen/logrus"
)

// ExporterSpec names a registered exporter and the settings to build it with.
type ExporterSpec struct {
	Name     string
	Settings map[string]interface{}
}

//go:generate mockery --name=ExportersBuilder --dir=. --output=./mocks --filename=exporters_builder_mock.go --case=underscore --with-expecter
type ExportersBuilder interface {
	Validate(specs []ExporterSpec) error
	Build(specs []ExporterSpec) ([]domain.Exporter, error)
}

type exportersBuilder struct {
	logger  *logrus.Logger
	locator *factory.ExporterLocator
}

func NewExportersBuilder(logger *logrus.Logger, locator *factory.ExporterLocator) ExportersBuilder {
	return &exportersBuilder{
		logger:  logger,
		locator: locator,
	}
}

func (b *exportersBuilder) Validate(specs []ExporterSpec) error {
	for _, spec := range specs {
		if err := b.locator.ValidateExporter(spec.Name, spec.Settings); err != nil {
			return fmt.Errorf("exporter %s: %w", spec.Name, err)
		}
	}
	return nil
}

// Build returns the exporters in the given order. On failure the exporters built
// so far are closed.
func (b *exportersBuilder) Build(specs []ExporterSpec) ([]domain.Exporter, error) {
	exporters := make([]domain.Exporter, 0, len(specs))
	for _, spec := range specs {
		exporter, err := b.locator.GetExporter(spec.Name, spec.Settings)
		if err != nil {
			for _, e := range exporters {
				e.Close()
			}
			return nil, fmt.Errorf("exporter %s: %w", spec.Name, err)
		}
		b.logger.WithField("exporter", spec.Name).Info("telemetry exporter enabled")
		exporters = append(exporters, exporter)
	}
	return exporters, nil
}
