package report

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"hostel/internal/database"
	"hostel/internal/domain"
	"hostel/internal/modules/occupancy"
	"hostel/internal/pkg/apperr"
	"hostel/internal/repository"
)

var (
	ErrHostelNotFound  = apperr.NotFound("HOSTEL_NOT_FOUND", "Hostel not found")
	ErrBookingNotFound = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrForbidden       = apperr.Forbidden("FORBIDDEN", "You can only download invoices for your own bookings")
)

type OccupancyReport struct {
	HostelID        int64            `json:"hostelId"`
	HostelName      string           `json:"hostelName"`
	TotalRooms      int64            `json:"totalRooms"`
	RoomsByStatus   map[string]int64 `json:"roomsByStatus"`
	TotalCapacity   int64            `json:"totalCapacity"`
	ActiveBookings  int64            `json:"activeBookings"`
	OccupancyRate   float64          `json:"occupancyRate"`
	ApprovedRevenue float64          `json:"approvedRevenue"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

type Service struct {
	store  *repository.Store
	policy occupancy.Policy
	now    func() time.Time
}

func NewService(store *repository.Store, policy occupancy.Policy) *Service {
	return &Service{store: store, policy: policy, now: time.Now}
}

// Occupancy summarises rooms, active bookings and approved revenue for one
// hostel. The rate is active bookings over total bed capacity, in percent.
func (s *Service) Occupancy(ctx context.Context, hostelID int64) (*OccupancyReport, error) {
	h, err := s.store.Hostels.GetByID(ctx, hostelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostelNotFound
		}
		return nil, database.Classify("Failed to load hostel", err)
	}

	rep := &OccupancyReport{
		HostelID:      h.ID,
		HostelName:    h.Name,
		RoomsByStatus: map[string]int64{},
		GeneratedAt:   s.now(),
	}

	counts, err := s.store.Reports.RoomStatusCounts(ctx, hostelID)
	if err != nil {
		return nil, database.Classify("Failed to count rooms", err)
	}
	for _, c := range counts {
		rep.RoomsByStatus[c.Status] = c.Count
		rep.TotalRooms += c.Count
	}

	if rep.TotalCapacity, err = s.store.Reports.TotalCapacity(ctx, hostelID); err != nil {
		return nil, database.Classify("Failed to sum capacity", err)
	}
	if rep.ActiveBookings, err = s.store.Reports.CountBookings(ctx, hostelID, s.policy.ActiveStatuses()); err != nil {
		return nil, database.Classify("Failed to count bookings", err)
	}
	if rep.ApprovedRevenue, err = s.store.Reports.ApprovedRevenue(ctx, hostelID); err != nil {
		return nil, database.Classify("Failed to sum revenue", err)
	}

	if rep.TotalCapacity > 0 {
		rate := float64(rep.ActiveBookings) / float64(rep.TotalCapacity) * 100
		rep.OccupancyRate = math.Round(rate*100) / 100
	}
	return rep, nil
}

// Invoice renders the booking invoice as PDF.
func (s *Service) Invoice(ctx context.Context, bookingID, actorID int64, staff bool) ([]byte, string, error) {
	b, err := s.store.Bookings.GetDetailed(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBookingNotFound
		}
		return nil, "", database.Classify("Failed to load booking", err)
	}
	if !staff && b.UserID != actorID {
		return nil, "", ErrForbidden
	}

	payments, err := s.store.Payments.List(ctx, repository.PaymentFilter{BookingID: b.ID, Limit: 100})
	if err != nil {
		return nil, "", database.Classify("Failed to load payments", err)
	}

	data, err := buildInvoicePDF(invoiceData{Booking: b, Payments: payments, IssuedAt: s.now()})
	if err != nil {
		return nil, "", apperr.Internal("Failed to render invoice", err)
	}
	return data, invoiceFilename(b), nil
}

func paidTotal(payments []domain.Payment) float64 {
	var sum float64
	for _, p := range payments {
		if p.ApprovalStatus == domain.ApprovalApproved {
			sum += p.Amount
		}
	}
	return sum
}
