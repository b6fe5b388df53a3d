package repository

import (
	"context"

	"hostel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type PaymentFilter struct {
	HostelID       int64
	BookingID      int64
	ApprovalStatus domain.ApprovalStatus
	Limit          int
	Offset         int
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context, f PaymentFilter) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{})
	if f.HostelID > 0 {
		q = q.Where("hostel_id = ?", f.HostelID)
	}
	if f.BookingID > 0 {
		q = q.Where("booking_id = ?", f.BookingID)
	}
	if f.ApprovalStatus != "" {
		q = q.Where("approval_status = ?", f.ApprovalStatus)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var out []domain.Payment
	if err := q.Order("id DESC").Limit(limit).Offset(f.Offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PaymentRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByBooking removes every payment attached to the booking.
func (r *PaymentRepository) DeleteByBooking(ctx context.Context, bookingID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&domain.Payment{})
	return tx.RowsAffected, tx.Error
}

func (r *PaymentRepository) ExistsForPeriod(ctx context.Context, bookingID int64, period string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("booking_id = ? AND period = ?", bookingID, period).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
