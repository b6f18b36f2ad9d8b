package mocks

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/infra/telegram"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) SendMessage(ctx context.Context, chatID, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *Client) SendErrorAlert(ctx context.Context, fileName string, criticalCount int) error {
	args := m.Called(ctx, fileName, criticalCount)
	return args.Error(0)
}

func (m *Client) SendDailySummary(ctx context.Context, summary telegram.DailySummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *Client) TestConnection(ctx context.Context, chatID string) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}
