package repository

import (
	"context"

	"hostel/internal/domain"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type StatusCount struct {
	Status string
	Count  int64
}

func (r *ReportRepository) RoomStatusCounts(ctx context.Context, hostelID int64) ([]StatusCount, error) {
	var rows []StatusCount
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Select("status, COUNT(*) AS count").
		Where("hostel_id = ?", hostelID).
		Group("status").
		Order("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *ReportRepository) TotalCapacity(ctx context.Context, hostelID int64) (int64, error) {
	var total int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Select("COALESCE(SUM(capacity), 0)").
		Where("hostel_id = ?", hostelID).
		Scan(&total)
	return total, tx.Error
}

func (r *ReportRepository) CountBookings(ctx context.Context, hostelID int64, statuses []domain.BookingStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("hostel_id = ? AND status IN ?", hostelID, statuses).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *ReportRepository) ApprovedRevenue(ctx context.Context, hostelID int64) (float64, error) {
	var sum float64
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("hostel_id = ? AND approval_status = ?", hostelID, domain.ApprovalApproved).
		Scan(&sum)
	return sum, tx.Error
}
