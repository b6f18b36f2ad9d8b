package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/config"
	"github.com/NeuralTrust/TakeALook/pkg/dependency_container"
	"github.com/NeuralTrust/TakeALook/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/channel"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/event"
	"github.com/NeuralTrust/TakeALook/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/TakeALook/pkg/infra/logger"
	_ "github.com/NeuralTrust/TakeALook/pkg/infra/migrations"
	"github.com/NeuralTrust/TakeALook/pkg/infra/prometheus"
	"github.com/NeuralTrust/TakeALook/pkg/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultTokenTTL = 24 * time.Hour

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	command := getCommand()
	logger := infraLogger.NewLogger(command)

	if err := config.Load("./config"); err != nil {
		logger.Warn(err.Error())
	}
	cfg := config.GetConfig()

	switch command {
	case "token":
		if err := mintToken(cfg, os.Args[2:]); err != nil {
			logger.Fatalf("failed to create token: %v", err)
		}
	default:
		runServer(cfg, logger)
	}
}

func runServer(cfg *config.Config, logger *logrus.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency:  cfg.Metrics.EnableLatency,
		EnableCategory: cfg.Metrics.EnableCategory,
	})

	db, err := database.NewDB(logger, &database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Warn("failed to close database")
		}
	}()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:            cfg,
		Logger:         logger,
		DB:             db,
		EventsRegistry: event.Registry,
		EventsChannel:  channel.LogEvents,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer container.Close()

	container.Processor.StartWorkers(cfg.Processing.Workers)

	go func() {
		logger.Info("starting listening redis events")
		container.RedisListener.Listen(ctx, channel.LogEvents)
	}()

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: container.MiddlewareTransport,
		HandlerTransport:    container.HandlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
	}
	// in flight classifications finish before the stores close
	container.Processor.Shutdown()
	cancel()
	logger.Info("server gracefully stopped")
}

// mintToken prints an admin bearer token signed with the server secret.
func mintToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "admin", "token subject")
	ttl := fs.Duration("ttl", defaultTokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.Server.SecretKey == "" {
		return errors.New("server.secret_key is not configured")
	}
	token, err := jwt.NewJwtManager(&cfg.Server).CreateToken(*subject, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func getCommand() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return "serve"
}
