package domain

import "time"

type SalaryStatus string

const (
	SalaryPending  SalaryStatus = "PENDING"
	SalaryPaid     SalaryStatus = "PAID"
	SalaryRejected SalaryStatus = "REJECTED"
)

type Salary struct {
	ID              int64        `json:"id" gorm:"primaryKey"`
	HostelID        int64        `json:"hostel_id" gorm:"not null;index"`
	EmployeeID      int64        `json:"employee_id" gorm:"not null;index"`
	Amount          float64      `json:"amount"`
	Month           string       `json:"month" gorm:"size:7;not null"`
	Status          SalaryStatus `json:"status" gorm:"size:20;not null"`
	ProcessedBy     *int64       `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time   `json:"processed_at,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty" gorm:"type:text"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "PENDING"
	ExpenseApproved ExpenseStatus = "APPROVED"
	ExpenseRejected ExpenseStatus = "REJECTED"
)

type Expense struct {
	ID              int64         `json:"id" gorm:"primaryKey"`
	HostelID        int64         `json:"hostel_id" gorm:"not null;index"`
	Category        string        `json:"category" gorm:"size:64"`
	Description     string        `json:"description" gorm:"type:text"`
	Amount          float64       `json:"amount"`
	Status          ExpenseStatus `json:"status" gorm:"size:20;not null"`
	SubmittedBy     int64         `json:"submitted_by"`
	ApprovedBy      *int64        `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty"`
	RejectedBy      *int64        `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time    `json:"rejected_at,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty" gorm:"type:text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
