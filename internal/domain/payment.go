package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer, MethodMobileMoney:
		return true
	}
	return false
}

type Payment struct {
	ID              int64          `json:"id" gorm:"primaryKey"`
	BookingID       *int64         `json:"booking_id,omitempty" gorm:"index"`
	UserID          int64          `json:"user_id" gorm:"not null;index"`
	HostelID        int64          `json:"hostel_id" gorm:"not null;index"`
	RoomID          *int64         `json:"room_id,omitempty"`
	Amount          float64        `json:"amount"`
	Method          PaymentMethod  `json:"method" gorm:"size:20"`
	Status          PaymentStatus  `json:"status" gorm:"size:20;not null"`
	ApprovalStatus  ApprovalStatus `json:"approval_status" gorm:"size:20;not null;index"`
	Period          string         `json:"period,omitempty" gorm:"size:7"`
	ApprovedBy      *int64         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	RejectedBy      *int64         `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time     `json:"rejected_at,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty" gorm:"type:text"`
	Notes           string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
