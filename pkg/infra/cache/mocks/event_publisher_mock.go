package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/event"
	"github.com/stretchr/testify/mock"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, ev event.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
