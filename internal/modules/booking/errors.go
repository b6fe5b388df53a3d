package booking

import "hostel/internal/pkg/apperr"

var (
	ErrBookingNotFound    = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrRoomNotFound       = apperr.NotFound("ROOM_NOT_FOUND", "Room not found")
	ErrHostelNotFound     = apperr.NotFound("HOSTEL_NOT_FOUND", "Hostel not found")
	ErrUserNotFound       = apperr.NotFound("USER_NOT_FOUND", "User not found")
	ErrRoomHostelMismatch = apperr.InvalidInput("ROOM_HOSTEL_MISMATCH", "Room does not belong to the given hostel")
	ErrInvalidStatus      = apperr.InvalidInput("INVALID_STATUS",
		"Invalid status. Valid values: PENDING, CONFIRMED, CHECKED_IN, CHECKED_OUT, CANCELLED")
	ErrInvalidBookingType = apperr.InvalidInput("INVALID_BOOKING_TYPE", "Invalid booking type. Valid values: DAILY, MONTHLY")
	ErrInvalidDates       = apperr.InvalidInput("INVALID_DATES", "Check-out must be after check-in")
	ErrMissingDates       = apperr.InvalidInput("MISSING_DATES", "Daily bookings require check-in and check-out dates")
	ErrInvalidPrice       = apperr.InvalidInput("INVALID_PRICE", "Price must not be negative")
	ErrBookingCompleted   = apperr.Conflict("BOOKING_COMPLETED",
		"Booking is checked out and considered completed; it cannot be deleted")
	ErrForbidden = apperr.Forbidden("FORBIDDEN", "You can only access your own bookings")
)
