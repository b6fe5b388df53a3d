// Package catalog manages hostels and their rooms.
package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/pkg/apperr"
)

var (
	ErrHostelNotFound = apperr.NotFound("HOSTEL_NOT_FOUND", "Hostel not found")
	ErrRoomExists     = apperr.Conflict("ROOM_EXISTS", "Room number already exists in this hostel")
)

type HostelRepository interface {
	Create(ctx context.Context, h *domain.Hostel) error
	GetByID(ctx context.Context, id int64) (*domain.Hostel, error)
	List(ctx context.Context) ([]domain.Hostel, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	ListByHostel(ctx context.Context, hostelID int64) ([]domain.Room, error)
}

type Service struct {
	hostels HostelRepository
	rooms   RoomRepository
}

func NewService(hostels HostelRepository, rooms RoomRepository) *Service {
	return &Service{hostels: hostels, rooms: rooms}
}

func (s *Service) CreateHostel(ctx context.Context, req CreateHostelRequest) (*domain.Hostel, error) {
	h := &domain.Hostel{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := s.hostels.Create(ctx, h); err != nil {
		return nil, database.Classify("Failed to create hostel", err)
	}
	return h, nil
}

func (s *Service) GetHostel(ctx context.Context, id int64) (*domain.Hostel, error) {
	h, err := s.hostels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostelNotFound
		}
		return nil, database.Classify("Failed to load hostel", err)
	}
	return h, nil
}

func (s *Service) ListHostels(ctx context.Context) ([]domain.Hostel, error) {
	list, err := s.hostels.List(ctx)
	if err != nil {
		return nil, database.Classify("Failed to list hostels", err)
	}
	return list, nil
}

// CreateRoom adds a room to hostelID. New rooms start AVAILABLE.
func (s *Service) CreateRoom(ctx context.Context, hostelID int64, req CreateRoomRequest) (*domain.Room, error) {
	if _, err := s.GetHostel(ctx, hostelID); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.RoomNumber)
	existing, err := s.rooms.ListByHostel(ctx, hostelID)
	if err != nil {
		return nil, database.Classify("Failed to list rooms", err)
	}
	for _, r := range existing {
		if strings.EqualFold(r.RoomNumber, number) {
			return nil, ErrRoomExists
		}
	}

	room := &domain.Room{
		HostelID:      hostelID,
		RoomNumber:    number,
		Floor:         req.Floor,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		PricePerMonth: req.PricePerMonth,
		Status:        domain.RoomAvailable,
	}
	room.SetAmenities(req.Amenities)
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, database.Classify("Failed to create room", err)
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, hostelID int64) ([]domain.Room, error) {
	if _, err := s.GetHostel(ctx, hostelID); err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListByHostel(ctx, hostelID)
	if err != nil {
		return nil, database.Classify("Failed to list rooms", err)
	}
	return rooms, nil
}
