package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domain"
	"hostel/internal/testutil"
)

func TestCatalogHostelsAndRooms(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store.Hostels, store.Rooms)
	ctx := context.Background()

	h, err := svc.CreateHostel(ctx, CreateHostelRequest{Name: " Riverside ", City: "Nairobi", Email: "Desk@Riverside.example"})
	require.NoError(t, err)
	assert.Equal(t, "Riverside", h.Name)
	assert.Equal(t, "desk@riverside.example", h.Email)

	room, err := svc.CreateRoom(ctx, h.ID, CreateRoomRequest{
		RoomNumber:    "101",
		Capacity:      4,
		PricePerNight: 1200,
		Amenities:     []string{"wifi", "lockers"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, room.Status)

	_, err = svc.CreateRoom(ctx, h.ID, CreateRoomRequest{RoomNumber: "101", Capacity: 2})
	assert.ErrorIs(t, err, ErrRoomExists)

	_, err = svc.CreateRoom(ctx, 999, CreateRoomRequest{RoomNumber: "1", Capacity: 1})
	assert.ErrorIs(t, err, ErrHostelNotFound)

	rooms, err := svc.ListRooms(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, []string{"wifi", "lockers"}, rooms[0].AmenityList())

	hostels, err := svc.ListHostels(ctx)
	require.NoError(t, err)
	assert.Len(t, hostels, 1)
}
