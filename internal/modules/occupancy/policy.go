package occupancy

import "hostel/internal/domain"

// Policy decides which bookings occupy a bed.
type Policy struct {
	// CountCheckedOut keeps departed guests counted against capacity, the
	// legacy behaviour. Off by default.
	CountCheckedOut bool
}

func (p Policy) ActiveStatuses() []domain.BookingStatus {
	out := []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCheckedIn}
	if p.CountCheckedOut {
		out = append(out, domain.BookingCheckedOut)
	}
	return out
}

func (p Policy) IsActive(s domain.BookingStatus) bool {
	for _, a := range p.ActiveStatuses() {
		if a == s {
			return true
		}
	}
	return false
}

// DerivedStatus is OCCUPIED once the active count reaches capacity.
func DerivedStatus(occupied int64, capacity int) domain.RoomStatus {
	if occupied >= int64(capacity) {
		return domain.RoomOccupied
	}
	return domain.RoomAvailable
}
