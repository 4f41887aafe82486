package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"resume-insight/models"
)

var ErrNotFound = errors.New("insight not found")

// InsightStore persists insights. Rows are only ever inserted.
type InsightStore struct {
	db *gorm.DB
}

func NewInsightStore(db *gorm.DB) *InsightStore {
	return &InsightStore{db: db}
}

// Create inserts a new insight and returns it with its assigned id.
func (s *InsightStore) Create(ctx context.Context, filename, summary, source string) (*models.Insight, error) {
	insight := &models.Insight{
		Filename: filename,
		Summary:  summary,
		Source:   source,
	}
	if err := s.db.WithContext(ctx).Create(insight).Error; err != nil {
		return nil, fmt.Errorf("create insight: %w", err)
	}
	return insight, nil
}

// List returns every insight in insertion order.
func (s *InsightStore) List(ctx context.Context) ([]models.Insight, error) {
	insights := make([]models.Insight, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&insights).Error; err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return insights, nil
}

// GetByID returns ErrNotFound when no insight has the given id.
func (s *InsightStore) GetByID(ctx context.Context, id uint) (*models.Insight, error) {
	var insight models.Insight
	if err := s.db.WithContext(ctx).First(&insight, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get insight %d: %w", id, err)
	}
	return &insight, nil
}

// Ping checks the connection is alive.
func (s *InsightStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
