package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Alerter struct {
	mock.Mock
}

func (m *Alerter) SendErrorAlert(ctx context.Context, fileName string, criticalCount int) error {
	args := m.Called(ctx, fileName, criticalCount)
	return args.Error(0)
}
