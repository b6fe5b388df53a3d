package mirror

import "go.uber.org/zap"

// LogSink writes snapshots to the application log. Used when no mirror
// directory is configured.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) WriteBooking(b BookingSnapshot) error {
	s.log.Info("mirror booking",
		zap.String("event", b.Event),
		zap.Int64("booking_id", b.BookingID),
		zap.Int64("room_id", b.RoomID),
		zap.String("status", string(b.Status)),
		zap.Float64("price", b.Price),
	)
	return nil
}

func (s *LogSink) WritePayment(p PaymentSnapshot) error {
	s.log.Info("mirror payment",
		zap.String("event", p.Event),
		zap.Int64("payment_id", p.PaymentID),
		zap.Int64("booking_id", p.BookingID),
		zap.String("approval_status", string(p.ApprovalStatus)),
		zap.Float64("amount", p.Amount),
	)
	return nil
}
