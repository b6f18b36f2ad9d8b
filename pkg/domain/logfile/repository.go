package logfile

import (
	"context"

	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=logfile_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, log *LogFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*LogFile, error)
	GetByHash(ctx context.Context, hash string) (*LogFile, error)
	List(ctx context.Context, offset, limit int) ([]WithErrorCount, error)
	// Complete writes every finding and flips the log to completed in one
	// transaction. Either all of it is stored or none of it.
	Complete(ctx context.Context, id uuid.UUID, findings []finding.Finding, categories []string) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}
