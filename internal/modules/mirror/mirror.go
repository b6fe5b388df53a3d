package mirror

import (
	"time"

	"hostel/internal/domain"
)

type BookingSnapshot struct {
	Event       string
	BookingID   int64
	RoomID      int64
	HostelID    int64
	UserID      int64
	GuestEmail  string
	CheckIn     time.Time
	CheckOut    time.Time
	BookingType domain.BookingType
	Status      domain.BookingStatus
	Price       float64
	At          time.Time
}

type PaymentSnapshot struct {
	Event          string
	PaymentID      int64
	BookingID      int64
	HostelID       int64
	Amount         float64
	Method         domain.PaymentMethod
	Status         domain.PaymentStatus
	ApprovalStatus domain.ApprovalStatus
	Period         string
	At             time.Time
}

// BookingFrom snapshots b for event.
func BookingFrom(event string, b *domain.Booking, at time.Time) BookingSnapshot {
	s := BookingSnapshot{
		Event:       event,
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		HostelID:    b.HostelID,
		UserID:      b.UserID,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		BookingType: b.BookingType,
		Status:      b.Status,
		Price:       b.Price,
		At:          at,
	}
	if b.User != nil {
		s.GuestEmail = b.User.Email
	}
	return s
}

func PaymentFrom(event string, p *domain.Payment, at time.Time) PaymentSnapshot {
	s := PaymentSnapshot{
		Event:          event,
		PaymentID:      p.ID,
		HostelID:       p.HostelID,
		Amount:         p.Amount,
		Method:         p.Method,
		Status:         p.Status,
		ApprovalStatus: p.ApprovalStatus,
		Period:         p.Period,
		At:             at,
	}
	if p.BookingID != nil {
		s.BookingID = *p.BookingID
	}
	return s
}

// Mirror copies booking and payment changes to an external spreadsheet.
// Implementations must never block or fail the caller.
type Mirror interface {
	RecordBooking(BookingSnapshot)
	RecordPayment(PaymentSnapshot)
}

// Sink is the synchronous writer behind an Async mirror.
type Sink interface {
	WriteBooking(BookingSnapshot) error
	WritePayment(PaymentSnapshot) error
}

type Nop struct{}

func (Nop) RecordBooking(BookingSnapshot) {}
func (Nop) RecordPayment(PaymentSnapshot) {}
