package repository

import (
	"context"

	"go-social-insights/internal/entity"

	"gorm.io/gorm"
)

// AnalysisRunRepository defines the interface for analysis run persistence.
type AnalysisRunRepository interface {
	Create(ctx context.Context, run *entity.AnalysisRun) error
	Update(ctx context.Context, run *entity.AnalysisRun) error
	FindByID(ctx context.Context, id uint) (*entity.AnalysisRun, error)
	FindAll(ctx context.Context) ([]entity.AnalysisRun, error)
}

// NewAnalysisRunRepository creates a new GORM-based run repository.
func NewAnalysisRunRepository(db *gorm.DB) AnalysisRunRepository {
	return &analysisRunRepository{db: db}
}

type analysisRunRepository struct {
	db *gorm.DB
}

// Create persists a new analysis run.
func (r *analysisRunRepository) Create(ctx context.Context, run *entity.AnalysisRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Update persists changes to an existing run.
func (r *analysisRunRepository) Update(ctx context.Context, run *entity.AnalysisRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// FindByID retrieves a run by its ID.
func (r *analysisRunRepository) FindByID(ctx context.Context, id uint) (*entity.AnalysisRun, error) {
	var run entity.AnalysisRun
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// FindAll retrieves all runs, newest first.
func (r *analysisRunRepository) FindAll(ctx context.Context) ([]entity.AnalysisRun, error) {
	var runs []entity.AnalysisRun
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
