package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/procurehub/backend/internal/domain/catalog"
)

// GormParameterRepository implements ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// FindOrCreate resolves a parameter by name, creating it if absent
func (r *GormParameterRepository) FindOrCreate(ctx context.Context, name string) (*catalog.Parameter, error) {
	var parameter catalog.Parameter
	err := r.db.WithContext(ctx).First(&parameter, "name = ?", name).Error
	if err == nil {
		return &parameter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := catalog.NewParameter(name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// Ensure GormParameterRepository implements ParameterRepository
var _ catalog.ParameterRepository = (*GormParameterRepository)(nil)
