package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	LogHashKeyPattern = "log:hash:%s"

	LogHashTTLName = "log_hash"

	logHashTTL   = 24 * time.Hour
	memoryTTL    = 5 * time.Minute
	redisTimeout = 2 * time.Second
)

var ErrCacheMiss = errors.New("cache miss")

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	RedisClient() *redis.Client
	GetTTLMap(name string) *TTLMap

	GetLogID(ctx context.Context, fileHash string) (uuid.UUID, error)
	SaveLogID(ctx context.Context, fileHash string, id uuid.UUID) error
	DeleteLogID(ctx context.Context, fileHash string) error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

type client struct {
	redisClient *redis.Client
	ttlMaps     map[string]*TTLMap
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  config.Host,
			"port":  config.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Info("redis connected successfully")

	return NewClientFromRedis(redisClient), nil
}

// NewClientFromRedis wraps an already connected redis client. The TTL maps
// are created here and never added to afterwards, so reads need no lock.
func NewClientFromRedis(redisClient *redis.Client) Client {
	return &client{
		redisClient: redisClient,
		ttlMaps: map[string]*TTLMap{
			LogHashTTLName: NewTTLMap(memoryTTL),
		},
	}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	value, err := c.redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) GetLogID(ctx context.Context, fileHash string) (uuid.UUID, error) {
	res, err := c.Get(ctx, fmt.Sprintf(LogHashKeyPattern, fileHash))
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(res)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid cached log id: %w", err)
	}
	return id, nil
}

func (c *client) SaveLogID(ctx context.Context, fileHash string, id uuid.UUID) error {
	return c.Set(ctx, fmt.Sprintf(LogHashKeyPattern, fileHash), id.String(), logHashTTL)
}

func (c *client) DeleteLogID(ctx context.Context, fileHash string) error {
	return c.Delete(ctx, fmt.Sprintf(LogHashKeyPattern, fileHash))
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

func (c *client) GetTTLMap(name string) *TTLMap {
	return c.ttlMaps[name]
}
