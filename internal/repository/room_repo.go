package repository

import (
	"context"

	"hostel/internal/database"
	"hostel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// read retries transient failures unless the repository is bound to a
// transaction; there the whole transaction is retried instead.
func (r *RoomRepository) read(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.inTx {
		return fn(ctx)
	}
	return database.WithRetry(ctx, fn)
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := r.read(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&room, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDForUpdate loads the room holding a row lock until the surrounding
// transaction ends. SQLite ignores the locking clause; its single writer
// connection serializes instead.
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &room, nil
}

func (r *RoomRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.read(ctx, func(ctx context.Context) error {
		ids = ids[:0]
		return r.db.WithContext(ctx).Model(&domain.Room{}).Order("id").Pluck("id", &ids).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *RoomRepository) ListByHostel(ctx context.Context, hostelID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	tx := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("room_number").
		Find(&rooms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rooms, nil
}

// CountActiveBookings counts the room's bookings whose status is in statuses.
func (r *RoomRepository) CountActiveBookings(ctx context.Context, roomID int64, statuses []domain.BookingStatus) (int64, error) {
	var cnt int64
	err := r.read(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Model(&domain.Booking{}).
			Where("room_id = ? AND status IN ?", roomID, statuses).
			Count(&cnt).Error
	})
	if err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
