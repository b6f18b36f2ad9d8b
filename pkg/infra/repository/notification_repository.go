package repository

import (
	"context"
	"errors"
	"time"

	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/NeuralTrust/TakeALook/pkg/domain/notification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListPending(ctx context.Context) ([]notification.Notification, error) {
	pending := []notification.Notification{}
	err := r.db.WithContext(ctx).
		Where("sent = ?", false).
		Order("created_at ASC").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var entity notification.Notification
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sent": true, "sent_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.NewNotFoundError("notification", id)
	}
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("notification", id)
		}
		return nil, err
	}
	return &entity, nil
}
