package occupancy

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"hostel/internal/domain"
)

type mockRooms struct {
	mock.Mock
}

func (m *mockRooms) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*domain.Room)
	return room, args.Error(1)
}

func (m *mockRooms) CountActiveBookings(ctx context.Context, roomID int64, statuses []domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, roomID, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRooms) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRooms) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type recordingListener struct {
	mu      sync.Mutex
	changes []StatusChange
}

func (l *recordingListener) RoomStatusChanged(_ context.Context, c StatusChange) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, c)
}

func room(id int64, capacity int, status domain.RoomStatus) *domain.Room {
	return &domain.Room{ID: id, HostelID: 1, RoomNumber: "A1", Capacity: capacity, Status: status}
}
