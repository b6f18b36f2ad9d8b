package processor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/app/processor"
	"github.com/NeuralTrust/TakeALook/pkg/app/processor/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/classifier"
	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	logMocks "github.com/NeuralTrust/TakeALook/pkg/domain/logfile/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	notificationMocks "github.com/NeuralTrust/TakeALook/pkg/domain/notification/mocks"
	"github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"
	"github.com/NeuralTrust/TakeALook/pkg/infra/logger"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type engineFunc func(content string) classifier.Result

func (f engineFunc) Classify(content string) classifier.Result { return f(content) }

type recordingExporter struct {
	mu     sync.Mutex
	events []telemetry.ClassificationEvent
}

func (e *recordingExporter) Name() string                                { return "recording" }
func (e *recordingExporter) ValidateConfig(map[string]interface{}) error { return nil }
func (e *recordingExporter) WithSettings(map[string]interface{}) (telemetry.Exporter, error) {
	return e, nil
}
func (e *recordingExporter) Close() {}
func (e *recordingExporter) Handle(_ context.Context, evt telemetry.ClassificationEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evt)
	return nil
}

type fixture struct {
	logs          *logMocks.Repository
	notifications *notificationMocks.Repository
	alerter       *mocks.Alerter
	exporter      *recordingExporter
}

func newFixture() *fixture {
	return &fixture{
		logs:          new(logMocks.Repository),
		notifications: new(notificationMocks.Repository),
		alerter:       new(mocks.Alerter),
		exporter:      &recordingExporter{},
	}
}

func (f *fixture) processor(engine processor.Engine, cfg processor.Config) processor.Processor {
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 8
	}
	return processor.NewProcessor(
		logger.NewDiscardLogger(),
		cfg,
		engine,
		f.logs,
		f.notifications,
		f.alerter,
		[]telemetry.Exporter{f.exporter},
	)
}

func await(t *testing.T, ch <-chan processor.Outcome) processor.Outcome {
	t.Helper()
	select {
	case o, ok := <-ch:
		require.True(t, ok, "outcome channel closed without a value")
		_, more := <-ch
		assert.False(t, more, "outcome channel must be closed after one value")
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome delivered")
		return processor.Outcome{}
	}
}

func task() processor.Task {
	return processor.Task{
		LogID:      uuid.New(),
		FileName:   "app.log",
		FileHash:   "d41d8cd98f00b204e9800998ecf8427e",
		UploadedBy: "demo-user",
	}
}

func TestProcessor_CompletesAndPersistsOnce(t *testing.T) {
	f := newFixture()
	tk := task()
	tk.Content = "GET /x 404 OK\nWARN: retry\n"

	f.logs.On("Complete", mock.Anything, tk.LogID, mock.MatchedBy(func(records []finding.Finding) bool {
		return len(records) == 2 &&
			records[0].Category == "404" && records[0].LineNumber == 1 && records[0].LogID == tk.LogID &&
			records[1].Category == "WARNING" && records[1].Severity == rules.SeverityLow
	}), []string{"404", "WARNING"}).Return(nil).Once()
	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Type == notification.TypeProcessingComplete &&
			n.Message == "Analysis of app.log: Low: 1, Medium: 1, Critical: 0"
	})).Return(nil).Once()

	p := f.processor(classifier.New(rules.All()), processor.Config{})
	p.StartWorkers(2)
	defer p.Shutdown()

	ch, err := p.Submit(context.Background(), tk)
	require.NoError(t, err)
	out := await(t, ch)

	assert.Equal(t, logfile.StatusCompleted, out.Status)
	assert.NoError(t, out.Err)
	assert.Equal(t, classifier.Counts{Low: 1, Medium: 1}, out.Counts)
	f.logs.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
	f.alerter.AssertNotCalled(t, "SendErrorAlert", mock.Anything, mock.Anything, mock.Anything)

	require.Len(t, f.exporter.events, 1)
	assert.Equal(t, "completed", f.exporter.events[0].Status)
	assert.Equal(t, rules.Version, f.exporter.events[0].RuleVersion)
}

func TestProcessor_RecordsKeepMatchOrderWithinLine(t *testing.T) {
	f := newFixture()
	tk := task()
	tk.Content = "GET /orders 500 DATABASE ERROR\nWARN: slow\n"

	var stored []finding.Finding
	f.logs.On("Complete", mock.Anything, tk.LogID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored, _ = args.Get(2).([]finding.Finding) //nolint:errcheck
		}).Return(nil).Once()
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.alerter.On("SendErrorAlert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	p := f.processor(classifier.New(rules.All()), processor.Config{})
	p.StartWorkers(1)
	defer p.Shutdown()

	ch, err := p.Submit(context.Background(), tk)
	require.NoError(t, err)
	await(t, ch)

	require.Len(t, stored, 4)
	categories := make([]string, 0, len(stored))
	for i, r := range stored {
		assert.Equal(t, i, r.Position)
		categories = append(categories, r.Category)
	}
	assert.Equal(t, []string{"500", "APPLICATION_ERROR", "DATABASE_ERROR", "WARNING"}, categories)
	assert.Equal(t, stored[0].LineNumber, stored[2].LineNumber)
}

func TestProcessor_AlertsOnlyWhenCritical(t *testing.T) {
	f := newFixture()
	tk := task()
	tk.Content = "FATAL: disk full\nSQL INJECTION attempt\n"

	f.logs.On("Complete", mock.Anything, tk.LogID, mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Type == notification.TypeProcessingComplete
	})).Return(nil).Once()
	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.Type == notification.TypeErrorAlert && n.Sent && n.SentAt != nil
	})).Return(nil).Once()
	f.alerter.On("SendErrorAlert", mock.Anything, "app.log", 2).Return(nil).Once()

	p := f.processor(classifier.New(rules.All()), processor.Config{})
	p.StartWorkers(1)
	defer p.Shutdown()

	ch, err := p.Submit(context.Background(), tk)
	require.NoError(t, err)
	out := await(t, ch)

	assert.Equal(t, 2, out.Counts.Critical)
	f.alerter.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}

func TestProcessor_AlertFailureKeepsCompleted(t *testing.T) {
	f := newFixture()
	tk := task()
	tk.Content = "FATAL boom\n"

	f.logs.On("Complete", mock.Anything, tk.LogID, mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.alerter.On("SendErrorAlert", mock.Anything, "app.log", 1).Return(errors.New("telegram down"))

	p := f.processor(classifier.New(rules.All()), processor.Config{})
	p.StartWorkers(1)
	defer p.Shutdown()

	ch, _ := p.Submit(context.Background(), tk)
	out := await(t, ch)
	assert.Equal(t, logfile.StatusCompleted, out.Status)
	f.logs.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessor_PanicMapsToFailed(t *testing.T) {
	f := newFixture()
	tk := task()
	f.logs.On("MarkFailed", mock.Anything, tk.LogID, processor.ReasonPanic).Return(nil).Once()

	p := f.processor(engineFunc(func(string) classifier.Result { panic("regex exploded") }), processor.Config{})
	p.StartWorkers(1)
	defer p.Shutdown()

	ch, err := p.Submit(context.Background(), tk)
	require.NoError(t, err)
	out := await(t, ch)

	assert.Equal(t, logfile.StatusFailed, out.Status)
	assert.ErrorContains(t, out.Err, "regex exploded")
	f.logs.AssertExpectations(t)
	f.logs.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// the worker survives and keeps serving
	next := task()
	f.logs.On("MarkFailed", mock.Anything, next.LogID, processor.ReasonPanic).Return(nil).Once()
	ch, err = p.Submit(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, logfile.StatusFailed, await(t, ch).Status)
}

func TestProcessor_TimeoutMapsToFailed(t *testing.T) {
	f := newFixture()
	tk := task()
	release := make(chan struct{})
	defer close(release)

	f.logs.On("MarkFailed", mock.Anything, tk.LogID, processor.ReasonTimeout).Return(nil).Once()

	p := f.processor(engineFunc(func(string) classifier.Result {
		<-release
		return classifier.Result{}
	}), processor.Config{Timeout: 20 * time.Millisecond})
	p.StartWorkers(1)

	ch, err := p.Submit(context.Background(), tk)
	require.NoError(t, err)
	out := await(t, ch)

	assert.Equal(t, logfile.StatusFailed, out.Status)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
	f.logs.AssertExpectations(t)
	f.logs.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	require.Len(t, f.exporter.events, 1)
	assert.Equal(t, processor.ReasonTimeout, f.exporter.events[0].Reason)
	p.Shutdown()
}

func TestProcessor_PersistenceFailureKeepsNothing(t *testing.T) {
	f := newFixture()
	tk := task()
	tk.Content = "ERROR one\n"

	f.logs.On("Complete", mock.Anything, tk.LogID, mock.Anything, mock.Anything).Return(errors.New("tx aborted"))
	f.logs.On("MarkFailed", mock.Anything, tk.LogID, processor.ReasonPersistence).Return(nil).Once()

	p := f.processor(classifier.New(rules.All()), processor.Config{})
	p.StartWorkers(1)
	defer p.Shutdown()

	ch, _ := p.Submit(context.Background(), tk)
	out := await(t, ch)
	assert.Equal(t, logfile.StatusFailed, out.Status)
	assert.Equal(t, classifier.Counts{}, out.Counts)
	f.logs.AssertExpectations(t)
}

func TestProcessor_MarkFailedOnDeletedLog(t *testing.T) {
	f := newFixture()
	tk := task()
	f.logs.On("MarkFailed", mock.Anything, tk.LogID, processor.ReasonPanic).
		Return(domain.NewNotFoundError("processing log", tk.LogID))

	p := f.processor(engineFunc(func(string) classifier.Result { panic("x") }), processor.Config{})
	p.StartWorkers(1)
	defer p.Shutdown()

	ch, _ := p.Submit(context.Background(), tk)
	assert.Equal(t, logfile.StatusFailed, await(t, ch).Status)
}

func TestProcessor_QueueFull(t *testing.T) {
	f := newFixture()
	p := f.processor(classifier.New(rules.All()), processor.Config{QueueSize: 1})

	_, err := p.Submit(context.Background(), task())
	require.NoError(t, err)

	_, err = p.Submit(context.Background(), task())
	assert.ErrorIs(t, err, processor.ErrQueueFull)

	f.logs.On("MarkFailed", mock.Anything, mock.Anything, processor.ReasonShutdown).Return(nil)
	p.Shutdown()
}

func TestProcessor_ShutdownFailsQueuedTasksWithoutWorkers(t *testing.T) {
	f := newFixture()
	tk := task()
	f.logs.On("MarkFailed", mock.Anything, tk.LogID, processor.ReasonShutdown).Return(nil).Once()

	p := f.processor(classifier.New(rules.All()), processor.Config{})
	ch, err := p.Submit(context.Background(), tk)
	require.NoError(t, err)

	p.Shutdown()
	out := await(t, ch)
	assert.Equal(t, logfile.StatusFailed, out.Status)
	assert.ErrorIs(t, out.Err, processor.ErrShutdown)

	_, err = p.Submit(context.Background(), task())
	assert.ErrorIs(t, err, processor.ErrShutdown)
	p.Shutdown()
}

func TestProcessor_SubmitIgnoresCallerCancellation(t *testing.T) {
	f := newFixture()
	tk := task()
	tk.Content = "nothing to see"
	f.logs.On("Complete", mock.Anything, tk.LogID, []finding.Finding{}, []string(nil)).Return(nil)
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

	p := f.processor(classifier.New(rules.All()), processor.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Submit(ctx, tk)
	require.NoError(t, err)
	cancel()

	p.StartWorkers(1)
	defer p.Shutdown()
	assert.Equal(t, logfile.StatusCompleted, await(t, ch).Status)
}

func TestProcessor_ConcurrentSubmissions(t *testing.T) {
	f := newFixture()
	f.logs.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

	p := f.processor(classifier.New(rules.All()), processor.Config{QueueSize: 64})
	p.StartWorkers(4)
	defer p.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk := task()
			tk.Content = "x 404 y"
			ch, err := p.Submit(context.Background(), tk)
			if !assert.NoError(t, err) {
				return
			}
			select {
			case out := <-ch:
				assert.Equal(t, tk.LogID, out.LogID)
				assert.Equal(t, 1, out.Counts.Medium)
			case <-time.After(2 * time.Second):
				assert.Fail(t, "no outcome delivered")
			}
		}()
	}
	wg.Wait()
	f.logs.AssertNumberOfCalls(t, "Complete", 32)
}
