package notification

import (
	"fmt"

	"hostel/internal/domain"
)

// Render builds the title and body shown for kind.
func Render(kind domain.NotificationKind, p Payload) (title, message string) {
	switch kind {
	case domain.NotifBookingCreated:
		return "Booking received",
			fmt.Sprintf("Your booking #%v for room %v (%v to %v) is %v.",
				p["bookingId"], p["roomNumber"], p["checkin"], p["checkout"], p["status"])
	case domain.NotifBookingStatusChanged:
		return "Booking updated",
			fmt.Sprintf("Booking #%v for room %v changed from %v to %v.",
				p["bookingId"], p["roomNumber"], p["from"], p["to"])
	case domain.NotifPaymentApproved:
		return "Payment approved",
			fmt.Sprintf("Your payment #%v of %v was approved.", p["paymentId"], p["amount"])
	case domain.NotifPaymentRejected:
		msg := fmt.Sprintf("Your payment #%v of %v was rejected.", p["paymentId"], p["amount"])
		if reason, ok := p["reason"].(string); ok && reason != "" {
			msg += " Reason: " + reason
		}
		return "Payment rejected", msg
	default:
		return string(kind), fmt.Sprintf("%v", map[string]any(p))
	}
}
