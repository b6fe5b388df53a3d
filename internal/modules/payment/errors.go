package payment

import "hostel/internal/pkg/apperr"

var (
	ErrPaymentNotFound  = apperr.NotFound("PAYMENT_NOT_FOUND", "Payment not found")
	ErrSalaryNotFound   = apperr.NotFound("SALARY_NOT_FOUND", "Salary not found")
	ErrExpenseNotFound  = apperr.NotFound("EXPENSE_NOT_FOUND", "Expense not found")
	ErrBookingNotFound  = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrHostelNotFound   = apperr.NotFound("HOSTEL_NOT_FOUND", "Hostel not found")
	ErrEmployeeNotFound = apperr.NotFound("EMPLOYEE_NOT_FOUND", "Employee not found")

	ErrNotPending     = apperr.Conflict("NOT_PENDING", "Entity is not pending approval")
	ErrUnknownType    = apperr.InvalidInput("INVALID_TYPE", "Invalid type. Valid values: booking, salary, expense")
	ErrReasonRequired = apperr.InvalidInput("REASON_REQUIRED", "A rejection reason is required")
	ErrInvalidAmount  = apperr.InvalidInput("INVALID_AMOUNT", "Amount must be positive")
	ErrInvalidMethod  = apperr.InvalidInput("INVALID_METHOD", "Invalid method. Valid values: CASH, CARD, BANK_TRANSFER, MOBILE_MONEY")
	ErrInvalidPeriod  = apperr.InvalidInput("INVALID_PERIOD", "Period must be formatted as YYYY-MM")
	ErrForbidden      = apperr.Forbidden("FORBIDDEN", "You can only pay for your own bookings")
)
