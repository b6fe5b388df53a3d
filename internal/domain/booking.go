package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
)

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingCheckedIn,
	BookingCheckedOut,
	BookingCancelled,
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut, BookingCancelled},
	BookingCheckedOut: {},
	BookingCancelled:  {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type BookingType string

const (
	BookingDaily   BookingType = "DAILY"
	BookingMonthly BookingType = "MONTHLY"
)

func (t BookingType) IsValid() bool {
	return t == BookingDaily || t == BookingMonthly
}

type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	RoomID      int64         `json:"room_id" gorm:"not null;index"`
	HostelID    int64         `json:"hostel_id" gorm:"not null;index"`
	UserID      int64         `json:"user_id" gorm:"not null;index"`
	CheckIn     time.Time     `json:"checkin"`
	CheckOut    time.Time     `json:"checkout"`
	BookingType BookingType   `json:"booking_type" gorm:"size:16;not null"`
	Price       float64       `json:"price"`
	Status      BookingStatus `json:"status" gorm:"size:20;not null;index"`
	Duration    int           `json:"duration"`
	Notes       string        `json:"notes,omitempty" gorm:"type:text"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
	CancelledBy *int64        `json:"cancelled_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Hostel   *Hostel   `json:"hostel,omitempty" gorm:"foreignKey:HostelID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:BookingID"`
}
