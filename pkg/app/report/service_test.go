package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/TakeALook/pkg/app/report"
	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	findingMocks "github.com/NeuralTrust/TakeALook/pkg/domain/finding/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	logMocks "github.com/NeuralTrust/TakeALook/pkg/domain/logfile/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	notificationMocks "github.com/NeuralTrust/TakeALook/pkg/domain/notification/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/infra/logger"
	"github.com/NeuralTrust/TakeALook/pkg/infra/telegram"
	telegramMocks "github.com/NeuralTrust/TakeALook/pkg/infra/telegram/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	logs          *logMocks.Repository
	findings      *findingMocks.Repository
	notifications *notificationMocks.Repository
	telegram      *telegramMocks.Client
	svc           report.Service
}

func newFixture() *fixture {
	f := &fixture{
		logs:          new(logMocks.Repository),
		findings:      new(findingMocks.Repository),
		notifications: new(notificationMocks.Repository),
		telegram:      new(telegramMocks.Client),
	}
	f.svc = report.NewService(logger.NewDiscardLogger(), f.logs, f.findings, f.notifications, f.telegram)
	return f
}

func (f *fixture) withStats() {
	f.logs.On("Stats", mock.Anything).Return(&logfile.Stats{
		TotalFiles:     10,
		CompletedFiles: 8,
		FailedFiles:    2,
		SuccessRate:    80,
	}, nil)
	f.findings.On("Stats", mock.Anything).Return(&finding.Stats{
		TotalErrors: 42,
		ErrorDistribution: []finding.CategoryCount{
			{Category: "404", Count: 20},
			{Category: "APPLICATION_ERROR", Count: 9},
			{Category: "500", Count: 5},
			{Category: "WARNING", Count: 4},
			{Category: "TIMEOUT", Count: 3},
			{Category: "FATAL_ERROR", Count: 1},
		},
		SeverityDistribution: []finding.SeverityCount{
			{Severity: rules.SeverityMedium, Count: 32},
			{Severity: rules.SeverityCritical, Count: 6},
			{Severity: rules.SeverityLow, Count: 4},
		},
	}, nil)
	f.findings.On("Trends", mock.Anything, 7).Return([]finding.DailyCount{{Date: "2025-09-01", Count: 42}}, nil)
}

func TestDashboard_MergesStats(t *testing.T) {
	f := newFixture()
	f.withStats()

	d, err := f.svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), d.TotalFiles)
	assert.Equal(t, int64(8), d.CompletedFiles)
	assert.Equal(t, int64(2), d.FailedFiles)
	assert.InDelta(t, 80.0, d.SuccessRate, 0.001)
	assert.Equal(t, int64(42), d.TotalErrors)
	assert.Len(t, d.ErrorDistribution, 6)
	assert.Equal(t, []finding.DailyCount{{Date: "2025-09-01", Count: 42}}, d.ErrorTrends)
}

func TestDashboard_EmptyTrendsAreNotNull(t *testing.T) {
	f := newFixture()
	f.logs.On("Stats", mock.Anything).Return(&logfile.Stats{}, nil)
	f.findings.On("Stats", mock.Anything).Return(&finding.Stats{}, nil)
	f.findings.On("Trends", mock.Anything, 7).Return(nil, nil)

	d, err := f.svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, d.ErrorTrends)
}

func TestDashboard_PropagatesErrors(t *testing.T) {
	f := newFixture()
	f.logs.On("Stats", mock.Anything).Return(nil, errors.New("db down"))
	f.findings.On("Stats", mock.Anything).Return(&finding.Stats{}, nil)
	f.findings.On("Trends", mock.Anything, 7).Return([]finding.DailyCount{}, nil)

	_, err := f.svc.Dashboard(context.Background())

	assert.ErrorContains(t, err, "db down")
}

func TestDailySummary(t *testing.T) {
	f := newFixture()
	f.withStats()

	s, err := f.svc.DailySummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), s.FilesProcessed)
	assert.Equal(t, int64(42), s.TotalErrors)
	assert.Equal(t, int64(6), s.CriticalErrors)
	assert.Equal(t, []telegram.TopError{
		{Type: "404", Count: 20},
		{Type: "APPLICATION_ERROR", Count: 9},
		{Type: "500", Count: 5},
		{Type: "WARNING", Count: 4},
		{Type: "TIMEOUT", Count: 3},
	}, s.TopErrors)
}

func TestSendDailySummary_RecordsNotification(t *testing.T) {
	f := newFixture()
	f.withStats()
	f.telegram.On("SendDailySummary", mock.Anything, mock.MatchedBy(func(s telegram.DailySummary) bool {
		return s.CriticalErrors == 6
	})).Return(nil)
	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Type == notification.TypeDailySummary && n.Sent && n.SentAt != nil
	})).Return(nil)

	_, err := f.svc.SendDailySummary(context.Background())

	require.NoError(t, err)
	f.telegram.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}

func TestSendDailySummary_DeliveryFailure(t *testing.T) {
	f := newFixture()
	f.withStats()
	f.telegram.On("SendDailySummary", mock.Anything, mock.Anything).Return(telegram.ErrNoAdminChat)

	_, err := f.svc.SendDailySummary(context.Background())

	assert.ErrorIs(t, err, telegram.ErrNoAdminChat)
	f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
