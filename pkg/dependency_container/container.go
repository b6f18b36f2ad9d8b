package dependency_container

import (
	"fmt"
	"reflect"
	"time"

	appLogfile "github.com/NeuralTrust/TakeALook/pkg/app/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/app/ingest"
	"github.com/NeuralTrust/TakeALook/pkg/app/processor"
	"github.com/NeuralTrust/TakeALook/pkg/app/report"
	"github.com/NeuralTrust/TakeALook/pkg/app/telemetry"
	"github.com/NeuralTrust/TakeALook/pkg/classifier"
	"github.com/NeuralTrust/TakeALook/pkg/config"
	domainLogfile "github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	domainTelemetry "github.com/NeuralTrust/TakeALook/pkg/domain/telemetry"
	handlers "github.com/NeuralTrust/TakeALook/pkg/handlers/http"
	"github.com/NeuralTrust/TakeALook/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/channel"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/event"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/subscriber"
	"github.com/NeuralTrust/TakeALook/pkg/infra/database"
	"github.com/NeuralTrust/TakeALook/pkg/infra/httpx"
	"github.com/NeuralTrust/TakeALook/pkg/infra/repository"
	"github.com/NeuralTrust/TakeALook/pkg/infra/telegram"
	infraTelemetry "github.com/NeuralTrust/TakeALook/pkg/infra/telemetry"
	"github.com/NeuralTrust/TakeALook/pkg/infra/telemetry/kafka"
	"github.com/NeuralTrust/TakeALook/pkg/middleware"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/NeuralTrust/TakeALook/pkg/version"
	"github.com/sirupsen/logrus"
)

const (
	telegramTimeout     = 10 * time.Second
	telegramMaxFailures = 5
	telegramOpenTimeout = 30 * time.Second
)

type Container struct {
	Cache               cache.Client
	RedisListener       cache.EventListener
	RedisPublisher      cache.EventPublisher
	LogRepository       domainLogfile.Repository
	Processor           processor.Processor
	Exporters           []domainTelemetry.Exporter
	TelegramClient      telegram.Client
	JWTManager          jwt.Manager
	MiddlewareTransport middleware.Transport
	HandlerTransport    handlers.HandlerTransport
}

type ContainerDI struct {
	Cfg            *config.Config
	Logger         *logrus.Logger
	DB             *database.DB
	EventsRegistry map[string]reflect.Type
	EventsChannel  channel.Channel
}

func NewContainer(di ContainerDI) (*Container, error) {
	cacheConfig := cache.Config{
		Host:     di.Cfg.Redis.Host,
		Port:     di.Cfg.Redis.Port,
		Password: di.Cfg.Redis.Password,
		DB:       di.Cfg.Redis.DB,
		TLS:      di.Cfg.Redis.TLS,
	}
	cacheInstance, err := cache.NewClient(cacheConfig, di.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %v", err)
	}

	redisPublisher := cache.NewRedisEventPublisher(cacheInstance, di.EventsChannel)
	redisListener := cache.NewRedisEventListener(di.Logger, cacheInstance, di.EventsRegistry)

	// repository
	logRepository := repository.NewLogFileRepository(di.DB.DB)
	findingRepository := repository.NewFindingRepository(di.DB.DB)
	notificationRepository := repository.NewNotificationRepository(di.DB.DB)

	// subscribers
	deleteLogSubscriber := subscriber.NewDeleteLogEventSubscriber(di.Logger, cacheInstance)
	cache.RegisterEventSubscriber[event.DeleteLogCacheEvent](redisListener, deleteLogSubscriber)

	// telegram
	httpClient := httpx.NewFastHTTPClient(
		httpx.WithTimeout(telegramTimeout),
		httpx.WithUserAgent(fmt.Sprintf("%s/%s", version.AppName, version.Version)),
	)
	breaker := httpx.NewCircuitBreaker("telegram", telegramOpenTimeout, telegramMaxFailures, di.Logger)
	telegramClient := telegram.NewClient(di.Logger, telegram.Config{
		BotToken:    di.Cfg.Telegram.BotToken,
		AdminChatID: di.Cfg.Telegram.AdminChatID,
		APIURL:      di.Cfg.Telegram.APIURL,
		AppURL:      di.Cfg.Telegram.AppURL,
	}, httpClient, breaker)

	// telemetry
	exporterLocator := infraTelemetry.NewExporterLocator(
		infraTelemetry.WithExporter(kafka.NewKafkaExporter()),
	)
	// alerts are counted as disabled when no bot is configured
	var alerter processor.Alerter
	if di.Cfg.Telegram.BotToken != "" {
		alerter = telegramClient
	}

	exportersBuilder := telemetry.NewExportersBuilder(di.Logger, exporterLocator)
	exporters, err := exportersBuilder.Build(exporterSpecs(di.Cfg.Exporters))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry exporters: %w", err)
	}

	// service
	logFinder := appLogfile.NewFinder(logRepository, cacheInstance, di.Logger)
	logDeleter := appLogfile.NewDeleter(di.Logger, logRepository, redisPublisher)
	logProcessor := processor.NewProcessor(
		di.Logger,
		processor.Config{
			QueueSize: di.Cfg.Processing.QueueSize,
			Timeout:   di.Cfg.Processing.Timeout,
		},
		classifier.New(rules.All()),
		logRepository,
		notificationRepository,
		alerter,
		exporters,
	)
	ingestService := ingest.NewService(
		di.Logger,
		ingest.Config{
			MaxSize:           di.Cfg.Upload.MaxSize,
			AllowedExtensions: di.Cfg.Upload.AllowedExtensions,
		},
		logRepository,
		logFinder,
		logProcessor,
	)
	reportService := report.NewService(
		di.Logger,
		logRepository,
		findingRepository,
		notificationRepository,
		telegramClient,
	)

	jwtManager := jwt.NewJwtManager(&di.Cfg.Server)

	middlewareTransport := middleware.Transport{
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(di.Logger, jwtManager),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(di.Logger),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
	}

	handlerTransport := handlers.HandlerTransport{
		// Logs
		UploadLogHandler: handlers.NewUploadLogHandler(di.Logger, ingestService, di.Cfg),
		ListLogsHandler:  handlers.NewListLogsHandler(di.Logger, logRepository),
		GetLogHandler:    handlers.NewGetLogHandler(di.Logger, logRepository, findingRepository),
		DeleteLogHandler: handlers.NewDeleteLogHandler(di.Logger, logDeleter),
		// Rules
		ListRulesHandler:      handlers.NewListRulesHandler(),
		GetSuggestionsHandler: handlers.NewGetSuggestionsHandler(),
		// Reports
		DashboardStatsHandler: handlers.NewDashboardStatsHandler(di.Logger, reportService),
		DailySummaryHandler:   handlers.NewDailySummaryHandler(di.Logger, reportService),
		// Notifications
		ListPendingNotificationsHandler: handlers.NewListPendingNotificationsHandler(di.Logger, notificationRepository),
		MarkNotificationSentHandler:     handlers.NewMarkNotificationSentHandler(di.Logger, notificationRepository),
		TelegramTestHandler:             handlers.NewTelegramTestHandler(di.Logger, telegramClient),
		// Version
		GetVersionHandler: handlers.NewGetVersionHandler(di.Logger),
	}

	container := &Container{
		Cache:               cacheInstance,
		RedisListener:       redisListener,
		RedisPublisher:      redisPublisher,
		LogRepository:       logRepository,
		Processor:           logProcessor,
		Exporters:           exporters,
		TelegramClient:      telegramClient,
		JWTManager:          jwtManager,
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
	}
	return container, nil
}

// Close releases the exporters and the redis connection opened by
// NewContainer. The database handle is owned by the caller.
func (c *Container) Close() {
	for _, e := range c.Exporters {
		e.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.RedisClient().Close()
	}
}

func exporterSpecs(cfg config.ExportersConfig) []telemetry.ExporterSpec {
	var specs []telemetry.ExporterSpec
	if cfg.Kafka.Enabled {
		specs = append(specs, telemetry.ExporterSpec{Name: kafka.ExporterName, Settings: cfg.Kafka.Settings})
	}
	return specs
}
