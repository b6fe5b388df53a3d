package catalog

type CreateHostelRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=500"`
	City    string `json:"city" validate:"max=120"`
	Phone   string `json:"phone" validate:"max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type CreateRoomRequest struct {
	RoomNumber    string   `json:"roomNumber" validate:"required,max=32"`
	Floor         int      `json:"floor"`
	Capacity      int      `json:"capacity" validate:"required,gt=0"`
	PricePerNight float64  `json:"pricePerNight" validate:"gte=0"`
	PricePerMonth float64  `json:"pricePerMonth" validate:"gte=0"`
	Amenities     []string `json:"amenities,omitempty"`
}
