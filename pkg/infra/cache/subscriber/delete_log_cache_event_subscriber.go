package subscriber

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/infra/cache"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type DeleteLogEventSubscriber struct {
	logger      *logrus.Logger
	cache       cache.Client
	memoryCache *cache.TTLMap
}

func NewDeleteLogEventSubscriber(
	logger *logrus.Logger,
	c cache.Client,
) cache.EventSubscriber[event.DeleteLogCacheEvent] {
	return &DeleteLogEventSubscriber{
		logger:      logger,
		cache:       c,
		memoryCache: c.GetTTLMap(cache.LogHashTTLName),
	}
}

func (s DeleteLogEventSubscriber) OnEvent(ctx context.Context, evt event.DeleteLogCacheEvent) error {
	s.logger.WithFields(logrus.Fields{
		"log_id":    evt.LogID,
		"file_hash": evt.FileHash,
	}).Debug("invalidating log fingerprint cache")

	if s.memoryCache != nil {
		s.memoryCache.Delete(evt.FileHash)
	}
	if err := s.cache.DeleteLogID(ctx, evt.FileHash); err != nil {
		s.logger.WithError(err).Warn("failed to delete log fingerprint from redis cache")
	}
	return nil
}
