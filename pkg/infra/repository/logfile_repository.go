package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const findingsBatchSize = 500

type logFileRepository struct {
	db *gorm.DB
}

func NewLogFileRepository(db *gorm.DB) logfile.Repository {
	return &logFileRepository{
		db: db,
	}
}

func (r *logFileRepository) Create(ctx context.Context, log *logfile.LogFile) error {
	err := r.db.WithContext(ctx).Create(log).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return logfile.ErrDuplicateHash
	}
	return err
}

func (r *logFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*logfile.LogFile, error) {
	var entity logfile.LogFile
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("log", id)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *logFileRepository) GetByHash(ctx context.Context, hash string) (*logfile.LogFile, error) {
	var entity logfile.LogFile
	if err := r.db.WithContext(ctx).First(&entity, "file_hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundByKeyError("log", hash)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *logFileRepository) List(ctx context.Context, offset, limit int) ([]logfile.WithErrorCount, error) {
	var rows []logfile.WithErrorCount
	err := r.db.WithContext(ctx).
		Table("logs").
		Select("logs.*, COUNT(errors.id) AS error_count").
		Joins("LEFT JOIN errors ON errors.log_id = logs.id").
		Group("logs.id").
		Order("logs.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *logFileRepository) Complete(
	ctx context.Context,
	id uuid.UUID,
	findings []finding.Finding,
	categories []string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(findings) > 0 {
			if err := tx.CreateInBatches(findings, findingsBatchSize).Error; err != nil {
				return fmt.Errorf("failed to store findings: %w", err)
			}
		}
		res := tx.Model(&logfile.LogFile{}).
			Where("id = ? AND status = ?", id, logfile.StatusProcessing).
			Updates(map[string]interface{}{
				"status":     logfile.StatusCompleted,
				"categories": pq.StringArray(categories),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update log status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFoundError("processing log", id)
		}
		return nil
	})
}

func (r *logFileRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	res := r.db.WithContext(ctx).
		Model(&logfile.LogFile{}).
		Where("id = ? AND status = ?", id, logfile.StatusProcessing).
		Updates(map[string]interface{}{
			"status":         logfile.StatusFailed,
			"failure_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("processing log", id)
	}
	return nil
}

func (r *logFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("log_id = ?", id).Delete(&finding.Finding{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&logfile.LogFile{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFoundError("log", id)
		}
		return nil
	})
}

func (r *logFileRepository) Stats(ctx context.Context) (*logfile.Stats, error) {
	var stats logfile.Stats
	err := r.db.WithContext(ctx).
		Model(&logfile.LogFile{}).
		Select(
			"COUNT(*) AS total_files, "+
				"COUNT(*) FILTER (WHERE status = ?) AS completed_files, "+
				"COUNT(*) FILTER (WHERE status = ?) AS failed_files",
			logfile.StatusCompleted, logfile.StatusFailed,
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	if stats.TotalFiles > 0 {
		stats.SuccessRate = float64(stats.CompletedFiles) / float64(stats.TotalFiles) * 100
	}
	return &stats, nil
}
