package report

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	"github.com/NeuralTrust/TakeALook/pkg/infra/telegram"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	trendDays    = 7
	topErrorsMax = 5
)

// Dashboard is the JSON payload behind the dashboard view.
type Dashboard struct {
	TotalFiles           int64                   `json:"total_files"`
	CompletedFiles       int64                   `json:"completed_files"`
	FailedFiles          int64                   `json:"failed_files"`
	SuccessRate          float64                 `json:"success_rate"`
	TotalErrors          int64                   `json:"total_errors"`
	ErrorDistribution    []finding.CategoryCount `json:"error_distribution"`
	SeverityDistribution []finding.SeverityCount `json:"severity_distribution"`
	ErrorTrends          []finding.DailyCount    `json:"error_trends"`
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=report_service_mock.go --case=underscore --with-expecter
type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	DailySummary(ctx context.Context) (telegram.DailySummary, error)
	SendDailySummary(ctx context.Context) (telegram.DailySummary, error)
}

type service struct {
	logger        *logrus.Logger
	logs          logfile.Repository
	findings      finding.Repository
	notifications notification.Repository
	telegram      telegram.Client
}

func NewService(
	logger *logrus.Logger,
	logs logfile.Repository,
	findings finding.Repository,
	notifications notification.Repository,
	telegramClient telegram.Client,
) Service {
	return &service{
		logger:        logger,
		logs:          logs,
		findings:      findings,
		notifications: notifications,
		telegram:      telegramClient,
	}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		logStats     *logfile.Stats
		findingStats *finding.Stats
		trends       []finding.DailyCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logStats, err = s.logs.Stats(gctx)
		if err != nil {
			return fmt.Errorf("log stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		findingStats, err = s.findings.Stats(gctx)
		if err != nil {
			return fmt.Errorf("finding stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		trends, err = s.findings.Trends(gctx, trendDays)
		if err != nil {
			return fmt.Errorf("finding trends: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if trends == nil {
		trends = []finding.DailyCount{}
	}
	return &Dashboard{
		TotalFiles:           logStats.TotalFiles,
		CompletedFiles:       logStats.CompletedFiles,
		FailedFiles:          logStats.FailedFiles,
		SuccessRate:          logStats.SuccessRate,
		TotalErrors:          findingStats.TotalErrors,
		ErrorDistribution:    findingStats.ErrorDistribution,
		SeverityDistribution: findingStats.SeverityDistribution,
		ErrorTrends:          trends,
	}, nil
}

func (s *service) DailySummary(ctx context.Context) (telegram.DailySummary, error) {
	d, err := s.Dashboard(ctx)
	if err != nil {
		return telegram.DailySummary{}, err
	}
	return summarize(d), nil
}

// SendDailySummary delivers the summary to the admin chat and records it as
// a daily_summary notification.
func (s *service) SendDailySummary(ctx context.Context) (telegram.DailySummary, error) {
	summary, err := s.DailySummary(ctx)
	if err != nil {
		return summary, err
	}
	if err := s.telegram.SendDailySummary(ctx, summary); err != nil {
		return summary, fmt.Errorf("failed to send daily summary: %w", err)
	}

	now := time.Now()
	n := &notification.Notification{
		Type: notification.TypeDailySummary,
		Message: fmt.Sprintf(
			"Files: %d, Errors: %d, Critical: %d, Success rate: %.1f%%",
			summary.FilesProcessed, summary.TotalErrors, summary.CriticalErrors, summary.SuccessRate,
		),
		Sent:   true,
		SentAt: &now,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.WithError(err).Error("failed to store daily summary notification")
	}
	return summary, nil
}

func summarize(d *Dashboard) telegram.DailySummary {
	summary := telegram.DailySummary{
		FilesProcessed: d.TotalFiles,
		TotalErrors:    d.TotalErrors,
		SuccessRate:    d.SuccessRate,
		TopErrors:      []telegram.TopError{},
	}
	for _, sc := range d.SeverityDistribution {
		if sc.Severity == rules.SeverityCritical {
			summary.CriticalErrors += sc.Count
		}
	}
	for i, cc := range d.ErrorDistribution {
		if i == topErrorsMax {
			break
		}
		summary.TopErrors = append(summary.TopErrors, telegram.TopError{Type: cc.Category, Count: cc.Count})
	}
	return summary
}
