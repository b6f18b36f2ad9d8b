package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/TakeALook/pkg/app/telemetry"
	domain "github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"
	"github.com/NeuralTrust/TakeALook/pkg/infra/logger"
	factory "github.com/NeuralTrust/TakeALook/pkg/infra/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExporter struct {
	name   string
	closed *int
}

func (s *stubExporter) Name() string { return s.name }

func (s *stubExporter) ValidateConfig(settings map[string]interface{}) error {
	if settings["topic"] == nil {
		return errors.New("topic is required")
	}
	return nil
}

func (s *stubExporter) Handle(context.Context, domain.ClassificationEvent) error { return nil }

func (s *stubExporter) WithSettings(map[string]interface{}) (domain.Exporter, error) {
	return &stubExporter{name: s.name, closed: s.closed}, nil
}

func (s *stubExporter) Close() { *s.closed++ }

func newBuilder(closed *int) telemetry.ExportersBuilder {
	locator := factory.NewExporterLocator(
		factory.WithExporter(&stubExporter{name: "stub", closed: closed}),
	)
	return telemetry.NewExportersBuilder(logger.NewDiscardLogger(), locator)
}

func TestExportersBuilder_Build(t *testing.T) {
	var closed int
	b := newBuilder(&closed)

	exporters, err := b.Build([]telemetry.ExporterSpec{
		{Name: "stub", Settings: map[string]interface{}{"topic": "logs"}},
	})
	require.NoError(t, err)
	require.Len(t, exporters, 1)
	assert.Equal(t, "stub", exporters[0].Name())
}

func TestExportersBuilder_BuildClosesOnFailure(t *testing.T) {
	var closed int
	b := newBuilder(&closed)

	_, err := b.Build([]telemetry.ExporterSpec{
		{Name: "stub", Settings: map[string]interface{}{"topic": "logs"}},
		{Name: "stub", Settings: map[string]interface{}{}},
	})
	assert.Error(t, err)
	assert.Equal(t, 1, closed)
}

func TestExportersBuilder_Validate(t *testing.T) {
	var closed int
	b := newBuilder(&closed)

	assert.NoError(t, b.Validate(nil))
	assert.ErrorContains(t, b.Validate([]telemetry.ExporterSpec{{Name: "nope"}}), "unknown exporter")
	assert.ErrorContains(t, b.Validate([]telemetry.ExporterSpec{{Name: "stub"}}), "topic is required")
}
