package repository

import (
	"context"

	"hostel/internal/domain"

	"gorm.io/gorm"
)

type HostelRepository struct {
	db *gorm.DB
}

func NewHostelRepository(db *gorm.DB) *HostelRepository {
	return &HostelRepository{db: db}
}

func (r *HostelRepository) Create(ctx context.Context, h *domain.Hostel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HostelRepository) GetByID(ctx context.Context, id int64) (*domain.Hostel, error) {
	var h domain.Hostel
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HostelRepository) List(ctx context.Context) ([]domain.Hostel, error) {
	var out []domain.Hostel
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
