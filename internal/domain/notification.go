package domain

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationKind string

const (
	NotifBookingCreated       NotificationKind = "booking_created"
	NotifBookingStatusChanged NotificationKind = "booking_status_changed"
	NotifPaymentApproved      NotificationKind = "payment_approved"
	NotifPaymentRejected      NotificationKind = "payment_rejected"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Kind      NotificationKind `json:"kind" gorm:"size:64"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty" gorm:"type:text"`
	IsRead    bool             `json:"is_read"`
	Data      datatypes.JSON   `json:"data,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
