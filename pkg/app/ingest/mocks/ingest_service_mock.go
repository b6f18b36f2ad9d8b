package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/app/ingest"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Ingest(ctx context.Context, upload ingest.Upload) (*ingest.Accepted, error) {
	args := m.Called(ctx, upload)
	a, _ := args.Get(0).(*ingest.Accepted) //nolint:errcheck
	return a, args.Error(1)
}
