package notification

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=notification_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListPending(ctx context.Context) ([]Notification, error)
	MarkSent(ctx context.Context, id uuid.UUID) (*Notification, error)
}
