package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) ListByLogID(ctx context.Context, logID uuid.UUID) ([]finding.Finding, error) {
	args := m.Called(ctx, logID)
	f, _ := args.Get(0).([]finding.Finding) //nolint:errcheck
	return f, args.Error(1)
}

func (m *Repository) CountByLogID(ctx context.Context, logID uuid.UUID) (int64, error) {
	args := m.Called(ctx, logID)
	n, _ := args.Get(0).(int64) //nolint:errcheck
	return n, args.Error(1)
}

func (m *Repository) Stats(ctx context.Context) (*finding.Stats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*finding.Stats) //nolint:errcheck
	return s, args.Error(1)
}

func (m *Repository) Trends(ctx context.Context, days int) ([]finding.DailyCount, error) {
	args := m.Called(ctx, days)
	d, _ := args.Get(0).([]finding.DailyCount) //nolint:errcheck
	return d, args.Error(1)
}
