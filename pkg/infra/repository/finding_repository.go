package repository

import (
	"context"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/domain/finding"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type findingRepository struct {
	db *gorm.DB
}

func NewFindingRepository(db *gorm.DB) finding.Repository {
	return &findingRepository{
		db: db,
	}
}

func (r *findingRepository) ListByLogID(ctx context.Context, logID uuid.UUID) ([]finding.Finding, error) {
	var findings []finding.Finding
	err := r.db.WithContext(ctx).
		Where("log_id = ?", logID).
		Order("line_number ASC, position ASC").
		Find(&findings).Error
	if err != nil {
		return nil, err
	}
	return findings, nil
}

func (r *findingRepository) CountByLogID(ctx context.Context, logID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&finding.Finding{}).
		Where("log_id = ?", logID).
		Count(&count).Error
	return count, err
}

func (r *findingRepository) Stats(ctx context.Context) (*finding.Stats, error) {
	stats := &finding.Stats{
		ErrorDistribution:    []finding.CategoryCount{},
		SeverityDistribution: []finding.SeverityCount{},
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&finding.Finding{}).Count(&stats.TotalErrors).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).
			Model(&finding.Finding{}).
			Select("error_type, COUNT(*) AS count").
			Group("error_type").
			Order("count DESC").
			Scan(&stats.ErrorDistribution).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).
			Model(&finding.Finding{}).
			Select("severity, COUNT(*) AS count").
			Group("severity").
			Scan(&stats.SeverityDistribution).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *findingRepository) Trends(ctx context.Context, days int) ([]finding.DailyCount, error) {
	since := time.Now().AddDate(0, 0, -days)
	trends := []finding.DailyCount{}
	err := r.db.WithContext(ctx).
		Model(&finding.Finding{}).
		Select("TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("DATE(created_at) ASC").
		Scan(&trends).Error
	if err != nil {
		return nil, err
	}
	return trends, nil
}
