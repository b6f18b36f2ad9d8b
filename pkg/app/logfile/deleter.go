package logfile

import (
	"context"

	domain "github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	infraCache "github.com/NeuralTrust/TakeALook/pkg/infra/cache"
	"github.com/NeuralTrust/TakeALook/pkg/infra/cache/event"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Deleter --dir=. --output=./mocks --filename=logfile_deleter_mock.go --case=underscore --with-expecter
type Deleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type deleter struct {
	logger    *logrus.Logger
	repo      domain.Repository
	publisher infraCache.EventPublisher
}

func NewDeleter(
	logger *logrus.Logger,
	repo domain.Repository,
	publisher infraCache.EventPublisher,
) Deleter {
	return &deleter{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

// Delete removes the log and its findings, then tells every instance to
// drop the cached fingerprint.
func (d *deleter) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := d.repo.Delete(ctx, id); err != nil {
		d.logger.WithError(err).WithField("log_id", id).Error("failed to delete log")
		return err
	}

	if err := d.publisher.Publish(
		ctx,
		event.DeleteLogCacheEvent{
			LogID:    id.String(),
			FileHash: entity.FileHash,
		},
	); err != nil {
		d.logger.WithError(err).Error("failed to publish log cache event")
	}

	return nil
}
