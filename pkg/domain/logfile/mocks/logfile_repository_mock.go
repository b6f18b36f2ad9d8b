package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, log *logfile.LogFile) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*logfile.LogFile, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*logfile.LogFile) //nolint:errcheck
	return l, args.Error(1)
}

func (m *Repository) GetByHash(ctx context.Context, hash string) (*logfile.LogFile, error) {
	args := m.Called(ctx, hash)
	l, _ := args.Get(0).(*logfile.LogFile) //nolint:errcheck
	return l, args.Error(1)
}

func (m *Repository) List(ctx context.Context, offset, limit int) ([]logfile.WithErrorCount, error) {
	args := m.Called(ctx, offset, limit)
	l, _ := args.Get(0).([]logfile.WithErrorCount) //nolint:errcheck
	return l, args.Error(1)
}

func (m *Repository) Complete(ctx context.Context, id uuid.UUID, findings []finding.Finding, categories []string) error {
	args := m.Called(ctx, id, findings, categories)
	return args.Error(0)
}

func (m *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Repository) Stats(ctx context.Context) (*logfile.Stats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*logfile.Stats) //nolint:errcheck
	return s, args.Error(1)
}
