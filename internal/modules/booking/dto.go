package booking

import (
	"strings"
	"time"

	"hostel/internal/domain"
	"hostel/internal/pkg/apperr"
)

type CreateBookingRequest struct {
	RoomID      int64    `json:"roomId" validate:"required,gt=0"`
	HostelID    int64    `json:"hostelId" validate:"required,gt=0"`
	UserID      int64    `json:"userId" validate:"gte=0"`
	CheckIn     string   `json:"checkin"`
	CheckOut    string   `json:"checkout"`
	BookingType string   `json:"bookingType" validate:"required"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Status      string   `json:"status"`
	Notes       string   `json:"notes" validate:"max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.InvalidInput("INVALID_DATE", "Invalid "+field+" date, expected YYYY-MM-DD or RFC3339")
}

func (r CreateBookingRequest) toInput() (CreateInput, error) {
	in := CreateInput{
		RoomID:      r.RoomID,
		HostelID:    r.HostelID,
		UserID:      r.UserID,
		BookingType: domain.BookingType(strings.ToUpper(strings.TrimSpace(r.BookingType))),
		Price:       r.Price,
		Status:      domain.BookingStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		Notes:       r.Notes,
	}
	var err error
	if in.CheckIn, err = parseDate("checkin", r.CheckIn); err != nil {
		return in, err
	}
	if in.CheckOut, err = parseDate("checkout", r.CheckOut); err != nil {
		return in, err
	}
	return in, nil
}
