package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/app/processor"
	"github.com/stretchr/testify/mock"
)

type Processor struct {
	mock.Mock
}

func (m *Processor) Submit(ctx context.Context, task processor.Task) (<-chan processor.Outcome, error) {
	args := m.Called(ctx, task)
	ch, _ := args.Get(0).(<-chan processor.Outcome) //nolint:errcheck
	return ch, args.Error(1)
}

func (m *Processor) StartWorkers(n int) {
	m.Called(n)
}

func (m *Processor) Shutdown() {
	m.Called()
}
