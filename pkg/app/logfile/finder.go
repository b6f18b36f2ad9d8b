package logfile

import (
	"context"
	"errors"

	domain "github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for log id")

// Finder resolves a content fingerprint to the log that already holds it.
//
//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=logfile_finder_mock.go --case=underscore --with-expecter
type Finder interface {
	FindIDByHash(ctx context.Context, fileHash string) (uuid.UUID, error)
	Remember(ctx context.Context, fileHash string, id uuid.UUID)
	Forget(ctx context.Context, fileHash string)
}

type finder struct {
	repo        domain.Repository
	cache       cache.Client
	memoryCache *cache.TTLMap
	logger      *logrus.Logger
}

func NewFinder(
	repository domain.Repository,
	c cache.Client,
	logger *logrus.Logger,
) Finder {
	return &finder{
		repo:        repository,
		cache:       c,
		logger:      logger,
		memoryCache: c.GetTTLMap(cache.LogHashTTLName),
	}
}

// FindIDByHash looks in process memory, then redis, then postgres. Cache
// failures are logged and fall through; a miss everywhere returns the
// repository's not found error.
func (f *finder) FindIDByHash(ctx context.Context, fileHash string) (uuid.UUID, error) {
	if id, err := f.getFromMemoryCache(fileHash); err == nil {
		return id, nil
	} else if errors.Is(err, ErrInvalidCacheType) {
		f.logger.WithError(err).Warn("memory cache holds an unexpected value")
		f.memoryCache.Delete(fileHash)
	}

	if id, err := f.cache.GetLogID(ctx, fileHash); err == nil {
		f.memoryCache.Set(fileHash, id)
		return id, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		f.logger.WithError(err).Warn("distributed cache read log fingerprint failure")
	}

	entity, err := f.repo.GetByHash(ctx, fileHash)
	if err != nil {
		return uuid.Nil, err
	}

	f.Remember(ctx, fileHash, entity.ID)
	return entity.ID, nil
}

func (f *finder) Remember(ctx context.Context, fileHash string, id uuid.UUID) {
	f.memoryCache.Set(fileHash, id)
	if err := f.cache.SaveLogID(ctx, fileHash, id); err != nil {
		f.logger.WithError(err).Error("failed to save log fingerprint to distributed cache")
	}
}

// Forget drops fileHash from process memory and redis.
func (f *finder) Forget(ctx context.Context, fileHash string) {
	f.memoryCache.Delete(fileHash)
	if err := f.cache.DeleteLogID(ctx, fileHash); err != nil {
		f.logger.WithError(err).Error("failed to delete log fingerprint from distributed cache")
	}
}

func (f *finder) getFromMemoryCache(fileHash string) (uuid.UUID, error) {
	cachedValue, found := f.memoryCache.Get(fileHash)
	if !found {
		return uuid.Nil, errors.New("log fingerprint not found in memory cache")
	}
	id, ok := cachedValue.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrInvalidCacheType
	}
	return id, nil
}
