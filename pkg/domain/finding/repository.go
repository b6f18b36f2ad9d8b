package finding

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=finding_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	ListByLogID(ctx context.Context, logID uuid.UUID) ([]Finding, error)
	CountByLogID(ctx context.Context, logID uuid.UUID) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
	Trends(ctx context.Context, days int) ([]DailyCount, error)
}
