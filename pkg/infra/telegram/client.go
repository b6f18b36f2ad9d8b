package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotConfigured = errors.New("telegram bot token not configured")
	ErrNoAdminChat   = errors.New("telegram admin chat id not configured")
)

const testMessage = "✅ Telegram integration test successful! You will now receive notifications from Take a Look."

type Config struct {
	BotToken    string
	AdminChatID string
	APIURL      string
	AppURL      string
}

type TopError struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type DailySummary struct {
	FilesProcessed int64      `json:"files_processed"`
	TotalErrors    int64      `json:"total_errors"`
	CriticalErrors int64      `json:"critical_errors"`
	SuccessRate    float64    `json:"success_rate"`
	TopErrors      []TopError `json:"top_errors"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=telegram_client_mock.go --case=underscore --with-expecter
type Client interface {
	SendMessage(ctx context.Context, chatID, text string) error
	SendErrorAlert(ctx context.Context, fileName string, criticalCount int) error
	SendDailySummary(ctx context.Context, summary DailySummary) error
	TestConnection(ctx context.Context, chatID string) error
}

type client struct {
	logger  *logrus.Logger
	cfg     Config
	http    httpx.Client
	breaker httpx.CircuitBreaker
	now     func() time.Time
}

func NewClient(logger *logrus.Logger, cfg Config, httpClient httpx.Client, breaker httpx.CircuitBreaker) Client {
	return &client{
		logger:  logger,
		cfg:     cfg,
		http:    httpClient,
		breaker: breaker,
		now:     time.Now,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *client) SendMessage(ctx context.Context, chatID, text string) error {
	if c.cfg.BotToken == "" {
		return ErrNotConfigured
	}
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return err
	}
	url := strings.TrimRight(c.cfg.APIURL, "/") + "/bot" + c.cfg.BotToken + "/sendMessage"

	return c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("telegram request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read telegram response: %w", err)
		}
		var parsed apiResponse
		_ = json.Unmarshal(raw, &parsed)
		if resp.StatusCode >= http.StatusBadRequest || !parsed.OK {
			return fmt.Errorf("telegram answered %d: %s", resp.StatusCode, parsed.Description)
		}
		return nil
	})
}

func (c *client) SendErrorAlert(ctx context.Context, fileName string, criticalCount int) error {
	if c.cfg.AdminChatID == "" {
		return ErrNoAdminChat
	}
	return c.SendMessage(ctx, c.cfg.AdminChatID, c.errorAlertText(fileName, criticalCount))
}

func (c *client) SendDailySummary(ctx context.Context, summary DailySummary) error {
	if c.cfg.AdminChatID == "" {
		return ErrNoAdminChat
	}
	return c.SendMessage(ctx, c.cfg.AdminChatID, c.dailySummaryText(summary))
}

func (c *client) TestConnection(ctx context.Context, chatID string) error {
	return c.SendMessage(ctx, chatID, testMessage)
}

func (c *client) errorAlertText(fileName string, criticalCount int) string {
	return fmt.Sprintf(
		"🚨 <b>Critical Errors Detected</b>\n\n"+
			"📁 <b>File:</b> %s\n"+
			"🔥 <b>Critical Errors:</b> %d\n"+
			"⏰ <b>Time:</b> %s\n\n"+
			"Please check the Take a Look dashboard for detailed analysis and resolution suggestions.",
		escapeHTML(fileName), criticalCount, c.now().Format(time.RFC1123),
	)
}

func (c *client) dailySummaryText(s DailySummary) string {
	top := make([]string, 0, len(s.TopErrors))
	for _, e := range s.TopErrors {
		top = append(top, fmt.Sprintf("• %s: %d", escapeHTML(e.Type), e.Count))
	}
	appURL := c.cfg.AppURL
	if appURL == "" {
		appURL = "your-app-url"
	}
	return fmt.Sprintf(
		"📊 <b>Daily Log Analysis Summary</b>\n\n"+
			"📁 <b>Files Processed:</b> %d\n"+
			"🔍 <b>Total Errors:</b> %d\n"+
			"🚨 <b>Critical Errors:</b> %d\n"+
			"✅ <b>Success Rate:</b> %.1f%%\n\n"+
			"Top Error Types:\n%s\n\n"+
			"View detailed reports at: %s",
		s.FilesProcessed, s.TotalErrors, s.CriticalErrors, s.SuccessRate,
		strings.Join(top, "\n"), appURL,
	)
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// file names are user supplied and the message is sent with parse_mode HTML
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
