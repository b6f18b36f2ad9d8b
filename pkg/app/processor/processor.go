package processor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/classifier"
	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	"github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"
	"github.com/NeuralTrust/TakeALook/pkg/infra/prometheus"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull = errors.New("processing queue is full")
	ErrShutdown  = errors.New("processor is shut down")
)

const (
	ReasonTimeout      = "classification timed out"
	ReasonPanic        = "classification crashed"
	ReasonPersistence  = "failed to store findings"
	ReasonShutdown     = "processor shut down before the task ran"
	cleanupTimeout     = 10 * time.Second
	sideEffectsTimeout = 15 * time.Second
)

// Task is one classification unit of work for an already created log.
type Task struct {
	LogID      uuid.UUID
	FileName   string
	FileHash   string
	Content    string
	UploadedBy string
}

// Outcome is delivered exactly once per submitted task.
type Outcome struct {
	LogID  uuid.UUID         `json:"log_id"`
	Status logfile.Status    `json:"status"`
	Counts classifier.Counts `json:"summary"`
	Lines  int               `json:"lines"`
	Err    error             `json:"-"`
}

// Engine is the classification entry point. *classifier.Classifier
// satisfies it.
type Engine interface {
	Classify(content string) classifier.Result
}

//go:generate mockery --name=Alerter --dir=. --output=./mocks --filename=alerter_mock.go --case=underscore --with-expecter
type Alerter interface {
	SendErrorAlert(ctx context.Context, fileName string, criticalCount int) error
}

//go:generate mockery --name=Processor --dir=. --output=./mocks --filename=processor_mock.go --case=underscore --with-expecter
type Processor interface {
	Submit(ctx context.Context, task Task) (<-chan Outcome, error)
	StartWorkers(n int)
	Shutdown()
}

type Config struct {
	QueueSize int
	Timeout   time.Duration
}

type job struct {
	ctx  context.Context
	task Task
	out  chan Outcome
}

type processor struct {
	logger        *logrus.Logger
	cfg           Config
	engine        Engine
	logRepo       logfile.Repository
	notifications notification.Repository
	alerter       Alerter
	exporters     []telemetry.Exporter

	mu       sync.RWMutex
	closed   bool
	taskChan chan job
	wg       sync.WaitGroup
}

func NewProcessor(
	logger *logrus.Logger,
	cfg Config,
	engine Engine,
	logRepo logfile.Repository,
	notifications notification.Repository,
	alerter Alerter,
	exporters []telemetry.Exporter,
) Processor {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	return &processor{
		logger:        logger,
		cfg:           cfg,
		engine:        engine,
		logRepo:       logRepo,
		notifications: notifications,
		alerter:       alerter,
		exporters:     exporters,
		taskChan:      make(chan job, cfg.QueueSize),
	}
}

// Submit enqueues task without blocking. The task does not inherit the
// cancellation of ctx, only its values.
func (p *processor) Submit(ctx context.Context, task Task) (<-chan Outcome, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrShutdown
	}

	out := make(chan Outcome, 1)
	select {
	case p.taskChan <- job{ctx: context.WithoutCancel(ctx), task: task, out: out}:
		prometheus.QueueDepth.Set(float64(len(p.taskChan)))
		return out, nil
	default:
		return nil, ErrQueueFull
	}
}

func (p *processor) StartWorkers(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.work()
	}
	p.logger.WithField("workers", n).Info("classification workers started")
}

// Shutdown stops accepting tasks, lets the workers drain the queue and
// waits for them.
func (p *processor) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.taskChan)
	p.mu.Unlock()

	p.logger.Info("shutting down classification workers")
	p.wg.Wait()
	// only non-empty when no worker was ever started
	for j := range p.taskChan {
		j.out <- p.fail(j.ctx, j.task, ReasonShutdown, ErrShutdown, time.Now())
		close(j.out)
	}
	p.logger.Info("classification workers stopped")
}

func (p *processor) work() {
	defer p.wg.Done()
	for j := range p.taskChan {
		prometheus.QueueDepth.Set(float64(len(p.taskChan)))
		outcome := p.run(j.ctx, j.task)
		j.out <- outcome
		close(j.out)
	}
}

type classification struct {
	result classifier.Result
	err    error
}

func (p *processor) run(parent context.Context, task Task) Outcome {
	start := time.Now()
	log := p.logger.WithFields(logrus.Fields{
		"log_id":    task.LogID,
		"file_name": task.FileName,
	})

	ctx, cancel := context.WithTimeout(parent, p.cfg.Timeout)
	defer cancel()

	done := make(chan classification, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("stack", string(debug.Stack())).Errorf("classification panic: %v", r)
				done <- classification{err: fmt.Errorf("%s: %v", ReasonPanic, r)}
			}
		}()
		done <- classification{result: p.engine.Classify(task.Content)}
	}()

	var c classification
	select {
	case c = <-done:
	case <-ctx.Done():
		// the scan cannot be interrupted; its result is discarded
		return p.fail(parent, task, ReasonTimeout, ctx.Err(), start)
	}
	if c.err != nil {
		return p.fail(parent, task, ReasonPanic, c.err, start)
	}

	res := c.result
	if err := p.logRepo.Complete(ctx, task.LogID, toRecords(task.LogID, res.Findings), res.Categories()); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return p.fail(parent, task, ReasonTimeout, err, start)
		}
		return p.fail(parent, task, ReasonPersistence, err, start)
	}

	elapsed := time.Since(start)
	log.WithFields(logrus.Fields{
		"lines":       res.Lines,
		"findings":    len(res.Findings),
		"critical":    res.Counts.Critical,
		"duration_ms": elapsed.Milliseconds(),
	}).Info("log classified")

	prometheus.ObserveProcessing(string(logfile.StatusCompleted), float64(elapsed.Milliseconds()))
	for _, total := range categoryTotals(res.Findings) {
		prometheus.AddFindings(total.Category, total.Severity, total.Count)
	}

	sideCtx, sideCancel := context.WithTimeout(parent, sideEffectsTimeout)
	defer sideCancel()
	p.notifyCompleted(sideCtx, task, res.Counts)
	if res.Counts.Critical > 0 {
		p.alert(sideCtx, task, res.Counts.Critical)
	}
	p.export(sideCtx, p.event(task, logfile.StatusCompleted, "", res, elapsed))

	return Outcome{
		LogID:  task.LogID,
		Status: logfile.StatusCompleted,
		Counts: res.Counts,
		Lines:  res.Lines,
	}
}

func (p *processor) fail(parent context.Context, task Task, reason string, cause error, start time.Time) Outcome {
	elapsed := time.Since(start)
	log := p.logger.WithFields(logrus.Fields{
		"log_id":    task.LogID,
		"file_name": task.FileName,
		"reason":    reason,
	})
	log.WithError(cause).Error("log processing failed")

	ctx, cancel := context.WithTimeout(parent, cleanupTimeout)
	defer cancel()
	if err := p.logRepo.MarkFailed(ctx, task.LogID, reason); err != nil {
		if domain.IsNotFound(err) {
			log.Warn("log left processing state before it could be marked failed")
		} else {
			log.WithError(err).Error("failed to mark log as failed")
		}
	}

	prometheus.ObserveProcessing(string(logfile.StatusFailed), float64(elapsed.Milliseconds()))
	p.export(ctx, p.event(task, logfile.StatusFailed, reason, classifier.Result{}, elapsed))

	return Outcome{
		LogID:  task.LogID,
		Status: logfile.StatusFailed,
		Err:    fmt.Errorf("%s: %w", reason, cause),
	}
}

func (p *processor) notifyCompleted(ctx context.Context, task Task, counts classifier.Counts) {
	n := &notification.Notification{
		UserID: task.UploadedBy,
		Type:   notification.TypeProcessingComplete,
		Message: fmt.Sprintf(
			"Analysis of %s: Low: %d, Medium: %d, Critical: %d",
			task.FileName, counts.Low, counts.Medium, counts.Critical,
		),
	}
	if err := p.notifications.Create(ctx, n); err != nil {
		p.logger.WithError(err).WithField("log_id", task.LogID).Error("failed to store processing notification")
	}
}

// alert delivery never changes the log status
func (p *processor) alert(ctx context.Context, task Task, critical int) {
	n := &notification.Notification{
		UserID:  task.UploadedBy,
		Type:    notification.TypeErrorAlert,
		Message: fmt.Sprintf("%d critical findings in %s", critical, task.FileName),
	}
	if p.alerter == nil {
		prometheus.AlertsTotal.WithLabelValues("disabled").Inc()
	} else if err := p.alerter.SendErrorAlert(ctx, task.FileName, critical); err != nil {
		prometheus.AlertsTotal.WithLabelValues("failed").Inc()
		p.logger.WithError(err).WithField("log_id", task.LogID).Warn("failed to deliver critical alert")
	} else {
		prometheus.AlertsTotal.WithLabelValues("sent").Inc()
		now := time.Now()
		n.Sent = true
		n.SentAt = &now
	}
	if err := p.notifications.Create(ctx, n); err != nil {
		p.logger.WithError(err).WithField("log_id", task.LogID).Error("failed to store alert notification")
	}
}

func (p *processor) export(ctx context.Context, evt telemetry.ClassificationEvent) {
	for _, exp := range p.exporters {
		if err := exp.Handle(ctx, evt); err != nil {
			p.logger.WithError(err).WithFields(logrus.Fields{
				"exporter": exp.Name(),
				"log_id":   evt.LogID,
			}).Warn("failed to export classification result")
		}
	}
}

func (p *processor) event(
	task Task,
	status logfile.Status,
	reason string,
	res classifier.Result,
	elapsed time.Duration,
) telemetry.ClassificationEvent {
	return telemetry.ClassificationEvent{
		LogID:       task.LogID.String(),
		FileName:    task.FileName,
		FileHash:    task.FileHash,
		Status:      string(status),
		Reason:      reason,
		Lines:       res.Lines,
		Low:         res.Counts.Low,
		Medium:      res.Counts.Medium,
		Critical:    res.Counts.Critical,
		Categories:  categoryTotals(res.Findings),
		RuleVersion: rules.Version,
		DurationMs:  elapsed.Milliseconds(),
		ProcessedAt: time.Now().UTC(),
	}
}

func toRecords(logID uuid.UUID, findings []classifier.Finding) []finding.Finding {
	records := make([]finding.Finding, 0, len(findings))
	now := time.Now()
	for i, f := range findings {
		records = append(records, finding.Finding{
			ID:         uuid.New(),
			LogID:      logID,
			Category:   f.Category,
			Message:    f.Message,
			LineNumber: f.LineNumber,
			Position:   i,
			Severity:   f.Severity,
			CreatedAt:  now,
		})
	}
	return records
}

// categoryTotals counts findings per category in first-seen order.
func categoryTotals(findings []classifier.Finding) []telemetry.CategoryTotal {
	index := make(map[string]int)
	totals := []telemetry.CategoryTotal{}
	for _, f := range findings {
		i, ok := index[f.Category]
		if !ok {
			i = len(totals)
			index[f.Category] = i
			totals = append(totals, telemetry.CategoryTotal{Category: f.Category, Severity: string(f.Severity)})
		}
		totals[i].Count++
	}
	return totals
}
