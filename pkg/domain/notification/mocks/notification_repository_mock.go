package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *Repository) ListPending(ctx context.Context) ([]notification.Notification, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).([]notification.Notification) //nolint:errcheck
	return n, args.Error(1)
}

func (m *Repository) MarkSent(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification) //nolint:errcheck
	return n, args.Error(1)
}
