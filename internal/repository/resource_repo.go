package repository

import (
	"context"

	"bhavan/internal/domain"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	var res domain.Resource
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// ResourceFilter narrows the public listing; empty fields match everything.
type ResourceFilter struct {
	FacilityType string
	Category     string
}

func (r *ResourceRepository) List(ctx context.Context, f ResourceFilter) ([]domain.Resource, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if f.FacilityType != "" {
		q = q.Where("facility_type = ?", f.FacilityType)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var out []domain.Resource
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	return r.db.WithContext(ctx).Save(res).Error
}
