package booking

import (
	"math"
	"time"

	"hostel/internal/domain"
)

const monthlyWindow = 30 * 24 * time.Hour

// Stay is the resolved booking window and price.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Duration int
	Price    float64
}

// Quote resolves dates and price for a booking of typ in room. Daily stays
// charge per started night; monthly stays charge the flat monthly rate and
// default to a 30 day window starting now.
func Quote(room *domain.Room, typ domain.BookingType, checkIn, checkOut *time.Time, price *float64, now time.Time) (Stay, error) {
	var s Stay

	switch typ {
	case domain.BookingDaily:
		if checkIn == nil || checkOut == nil {
			return s, ErrMissingDates
		}
		s.CheckIn, s.CheckOut = *checkIn, *checkOut
		if !s.CheckOut.After(s.CheckIn) {
			return s, ErrInvalidDates
		}
		s.Duration = nights(s.CheckIn, s.CheckOut)
		s.Price = float64(s.Duration) * room.PricePerNight

	case domain.BookingMonthly:
		s.CheckIn = now
		if checkIn != nil {
			s.CheckIn = *checkIn
		}
		s.CheckOut = s.CheckIn.Add(monthlyWindow)
		if checkOut != nil {
			s.CheckOut = *checkOut
		}
		if !s.CheckOut.After(s.CheckIn) {
			return s, ErrInvalidDates
		}
		s.Duration = nights(s.CheckIn, s.CheckOut)
		s.Price = room.PricePerMonth

	default:
		return s, ErrInvalidBookingType
	}

	if price != nil {
		if *price < 0 {
			return s, ErrInvalidPrice
		}
		s.Price = *price
	}
	s.Price = math.Round(s.Price*100) / 100
	return s, nil
}

func nights(in, out time.Time) int {
	n := int(math.Ceil(out.Sub(in).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}
