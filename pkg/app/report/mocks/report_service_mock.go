package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/app/report"
	"github.com/NeuralTrust/TakeALook/pkg/infra/telegram"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(*report.Dashboard) //nolint:errcheck
	return d, args.Error(1)
}

func (m *Service) DailySummary(ctx context.Context) (telegram.DailySummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(telegram.DailySummary) //nolint:errcheck
	return s, args.Error(1)
}

func (m *Service) SendDailySummary(ctx context.Context) (telegram.DailySummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(telegram.DailySummary) //nolint:errcheck
	return s, args.Error(1)
}
