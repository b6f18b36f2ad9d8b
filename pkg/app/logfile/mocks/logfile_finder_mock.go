package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Finder struct {
	mock.Mock
}

func (m *Finder) FindIDByHash(ctx context.Context, fileHash string) (uuid.UUID, error) {
	args := m.Called(ctx, fileHash)
	id, _ := args.Get(0).(uuid.UUID) //nolint:errcheck
	return id, args.Error(1)
}

func (m *Finder) Remember(ctx context.Context, fileHash string, id uuid.UUID) {
	m.Called(ctx, fileHash, id)
}

func (m *Finder) Forget(ctx context.Context, fileHash string) {
	m.Called(ctx, fileHash)
}
