package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomOutOfOrder  RoomStatus = "OUT_OF_ORDER"
)

// IsValid reports whether s is one of the known room statuses.
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomOutOfOrder:
		return true
	}
	return false
}

// IsDerived reports whether s is computed from bookings rather than set by staff.
func (s RoomStatus) IsDerived() bool {
	return s == RoomAvailable || s == RoomOccupied
}

type Room struct {
	ID            int64          `json:"id" gorm:"primaryKey"`
	HostelID      int64          `json:"hostel_id" gorm:"not null;index"`
	RoomNumber    string         `json:"room_number" gorm:"size:32;not null"`
	Floor         int            `json:"floor"`
	Capacity      int            `json:"capacity" gorm:"not null"`
	PricePerNight float64        `json:"price_per_night"`
	PricePerMonth float64        `json:"price_per_month"`
	Status        RoomStatus     `json:"status" gorm:"size:20;not null;default:AVAILABLE"`
	Amenities     datatypes.JSON `json:"amenities,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Hostel *Hostel `json:"hostel,omitempty" gorm:"foreignKey:HostelID"`
}

// AmenityList decodes the amenities column. Malformed data yields nil.
func (r *Room) AmenityList() []string {
	if len(r.Amenities) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(r.Amenities, &out); err != nil {
		return nil
	}
	return out
}

// SetAmenities stores the amenity set, dropping duplicates.
func (r *Room) SetAmenities(list []string) {
	seen := make(map[string]bool, len(list))
	uniq := make([]string, 0, len(list))
	for _, a := range list {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		uniq = append(uniq, a)
	}
	raw, _ := json.Marshal(uniq)
	r.Amenities = datatypes.JSON(raw)
}
