package repository

import (
	"context"

	"bhavan/internal/domain"

	"gorm.io/gorm"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(ctx context.Context, p *domain.Package) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	var p domain.Package
	err := r.db.WithContext(ctx).
		Preload("Resources").
		Preload("Resources.Resource").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) List(ctx context.Context, category string) ([]domain.Package, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Resources").
		Preload("Resources.Resource")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.Package
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the package row and its inclusion list.
func (r *PackageRepository) Update(ctx context.Context, p *domain.Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", p.ID).Delete(&domain.PackageResource{}).Error; err != nil {
			return err
		}
		for i := range p.Resources {
			p.Resources[i].ID = 0
			p.Resources[i].PackageID = p.ID
		}
		return tx.Save(p).Error
	})
}

// SoftDelete deactivates the package; history referencing it stays intact.
func (r *PackageRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Package{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
