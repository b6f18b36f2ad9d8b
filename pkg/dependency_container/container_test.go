package dependency_container_test

import (
	"context"
	"testing"

	container "github.com/NeuralTrust/TakeALook/pkg/dependency_container"
	"github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

type closingExporter struct {
	closed int
}

func (e *closingExporter) Name() string                                { return "closing" }
func (e *closingExporter) ValidateConfig(map[string]interface{}) error { return nil }
func (e *closingExporter) Handle(context.Context, telemetry.ClassificationEvent) error {
	return nil
}
func (e *closingExporter) WithSettings(map[string]interface{}) (telemetry.Exporter, error) {
	return e, nil
}
func (e *closingExporter) Close() { e.closed++ }

func TestContainer_CloseReleasesExportersAndRedis(t *testing.T) {
	exporter := &closingExporter{}
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	c := &container.Container{
		Exporters: []telemetry.Exporter{exporter},
		Cache:     cache.NewClientFromRedis(redisClient),
	}

	c.Close()

	assert.Equal(t, 1, exporter.closed)
	assert.ErrorIs(t, redisClient.Close(), redis.ErrClosed)
}

func TestContainer_CloseWithoutCache(t *testing.T) {
	exporter := &closingExporter{}
	c := &container.Container{Exporters: []telemetry.Exporter{exporter}}

	assert.NotPanics(t, c.Close)
	assert.Equal(t, 1, exporter.closed)
}
