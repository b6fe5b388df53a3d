package mirror

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var (
	bookingHeader = []string{"event", "booking_id", "room_id", "hostel_id", "user_id", "guest_email", "checkin", "checkout", "type", "status", "price", "recorded_at"}
	paymentHeader = []string{"event", "payment_id", "booking_id", "hostel_id", "amount", "method", "status", "approval_status", "period", "recorded_at"}
)

// CSVSink appends rows to bookings.csv and payments.csv under dir.
type CSVSink struct {
	dir string
	mu  sync.Mutex
}

func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror dir: %w", err)
	}
	return &CSVSink{dir: dir}, nil
}

func (s *CSVSink) WriteBooking(b BookingSnapshot) error {
	return s.append("bookings.csv", bookingHeader, []string{
		b.Event,
		strconv.FormatInt(b.BookingID, 10),
		strconv.FormatInt(b.RoomID, 10),
		strconv.FormatInt(b.HostelID, 10),
		strconv.FormatInt(b.UserID, 10),
		b.GuestEmail,
		b.CheckIn.Format(time.RFC3339),
		b.CheckOut.Format(time.RFC3339),
		string(b.BookingType),
		string(b.Status),
		strconv.FormatFloat(b.Price, 'f', 2, 64),
		b.At.Format(time.RFC3339),
	})
}

func (s *CSVSink) WritePayment(p PaymentSnapshot) error {
	return s.append("payments.csv", paymentHeader, []string{
		p.Event,
		strconv.FormatInt(p.PaymentID, 10),
		strconv.FormatInt(p.BookingID, 10),
		strconv.FormatInt(p.HostelID, 10),
		strconv.FormatFloat(p.Amount, 'f', 2, 64),
		string(p.Method),
		string(p.Status),
		string(p.ApprovalStatus),
		p.Period,
		p.At.Format(time.RFC3339),
	})
}

func (s *CSVSink) append(name string, header, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
