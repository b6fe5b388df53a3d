package payment

type DecisionRequest struct {
	Type   string `json:"type"`
	Reason string `json:"reason" validate:"max=2000"`
}

type CreatePaymentRequest struct {
	BookingID int64   `json:"bookingId" validate:"required,gt=0"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method"`
	Notes     string  `json:"notes" validate:"max=2000"`
}

type CreateSalaryRequest struct {
	HostelID   int64   `json:"hostelId" validate:"required,gt=0"`
	EmployeeID int64   `json:"employeeId" validate:"required,gt=0"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Month      string  `json:"month" validate:"required,len=7"`
}

type CreateExpenseRequest struct {
	HostelID    int64   `json:"hostelId" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,max=64"`
	Description string  `json:"description" validate:"max=2000"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}
