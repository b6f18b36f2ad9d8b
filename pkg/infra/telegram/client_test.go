package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/infra/httpx"
	"github.com/NeuralTrust/TakeALook/pkg/infra/httpx/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/infra/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func newTestClient(httpClient httpx.Client, cfg Config) *client {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.telegram.org"
	}
	c := NewClient(
		logger.NewDiscardLogger(),
		cfg,
		httpClient,
		httpx.NewCircuitBreaker("telegram-test", time.Minute, 2, nil),
	).(*client)
	c.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestSendMessage(t *testing.T) {
	httpClient := new(mocks.Client)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.URL.String() != "https://api.telegram.org/botTOKEN/sendMessage" {
			return false
		}
		var payload sendMessageRequest
		raw, _ := io.ReadAll(req.Body) //nolint:errcheck
		_ = json.Unmarshal(raw, &payload)
		return payload.ChatID == "42" && payload.Text == "hello" && payload.ParseMode == "HTML" &&
			req.Header.Get("Content-Type") == "application/json"
	})).Return(response(200, `{"ok":true}`), nil)

	c := newTestClient(httpClient, Config{BotToken: "TOKEN"})
	require.NoError(t, c.SendMessage(context.Background(), "42", "hello"))
	httpClient.AssertExpectations(t)
}

func TestSendMessage_NotConfigured(t *testing.T) {
	httpClient := new(mocks.Client)
	c := newTestClient(httpClient, Config{})

	assert.ErrorIs(t, c.SendMessage(context.Background(), "42", "hi"), ErrNotConfigured)
	httpClient.AssertNotCalled(t, "Do", mock.Anything)
}

func TestSendMessage_APIError(t *testing.T) {
	httpClient := new(mocks.Client)
	httpClient.On("Do", mock.Anything).Return(response(400, `{"ok":false,"description":"chat not found"}`), nil)

	c := newTestClient(httpClient, Config{BotToken: "TOKEN"})
	err := c.SendMessage(context.Background(), "1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessage_BreakerOpens(t *testing.T) {
	httpClient := new(mocks.Client)
	httpClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

	c := newTestClient(httpClient, Config{BotToken: "TOKEN"})
	ctx := context.Background()
	_ = c.SendMessage(ctx, "1", "x")
	_ = c.SendMessage(ctx, "1", "x")

	err := c.SendMessage(ctx, "1", "x")
	assert.True(t, httpx.IsOpen(err))
	httpClient.AssertNumberOfCalls(t, "Do", 2)
}

func TestSendErrorAlert(t *testing.T) {
	httpClient := new(mocks.Client)
	var sent sendMessageRequest
	httpClient.On("Do", mock.Anything).Run(func(args mock.Arguments) {
		req, _ := args.Get(0).(*http.Request) //nolint:errcheck
		raw, _ := io.ReadAll(req.Body)         //nolint:errcheck
		_ = json.Unmarshal(raw, &sent)
	}).Return(response(200, `{"ok":true}`), nil)

	c := newTestClient(httpClient, Config{BotToken: "TOKEN", AdminChatID: "admin"})
	require.NoError(t, c.SendErrorAlert(context.Background(), "<app>.log", 3))

	assert.Equal(t, "admin", sent.ChatID)
	assert.Contains(t, sent.Text, "Critical Errors Detected")
	assert.Contains(t, sent.Text, "<b>File:</b> &lt;app&gt;.log")
	assert.Contains(t, sent.Text, "<b>Critical Errors:</b> 3")
}

func TestSendErrorAlert_NoAdminChat(t *testing.T) {
	c := newTestClient(new(mocks.Client), Config{BotToken: "TOKEN"})
	assert.ErrorIs(t, c.SendErrorAlert(context.Background(), "a.log", 1), ErrNoAdminChat)
	assert.ErrorIs(t, c.SendDailySummary(context.Background(), DailySummary{}), ErrNoAdminChat)
}

func TestDailySummaryText(t *testing.T) {
	c := newTestClient(new(mocks.Client), Config{AppURL: "https://takealook.example"})
	text := c.dailySummaryText(DailySummary{
		FilesProcessed: 10,
		TotalErrors:    25,
		CriticalErrors: 4,
		SuccessRate:    90,
		TopErrors:      []TopError{{Type: "404", Count: 12}, {Type: "APPLICATION_ERROR", Count: 8}},
	})

	assert.Contains(t, text, "<b>Files Processed:</b> 10")
	assert.Contains(t, text, "<b>Success Rate:</b> 90.0%")
	assert.Contains(t, text, "• 404: 12\n• APPLICATION_ERROR: 8")
	assert.True(t, strings.HasSuffix(text, "View detailed reports at: https://takealook.example"))
}

func TestTestConnection(t *testing.T) {
	httpClient := new(mocks.Client)
	httpClient.On("Do", mock.Anything).Return(response(200, `{"ok":true}`), nil)

	c := newTestClient(httpClient, Config{BotToken: "TOKEN"})
	assert.NoError(t, c.TestConnection(context.Background(), "99"))
}
