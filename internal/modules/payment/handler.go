package payment

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel/internal/domain"
	"hostel/internal/middleware"
	"hostel/internal/pkg/request"
	"hostel/internal/pkg/response"
	"hostel/internal/pkg/validator"
	"hostel/internal/repository"
)

type Handler struct {
	service      *Service
	billing      *Billing
	exposeDetail bool
}

func NewHandler(service *Service, billing *Billing, exposeDetail bool) *Handler {
	return &Handler{service: service, billing: billing, exposeDetail: exposeDetail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.CreatePayment)
		payments.GET("", middleware.StaffOnly(), h.ListPayments)
		payments.PUT("/:id/approve", middleware.ManagerOnly(), h.Approve)
		payments.PUT("/:id/reject", middleware.ManagerOnly(), h.Reject)
	}

	salaries := rg.Group("/salaries", middleware.ManagerOnly())
	{
		salaries.POST("", h.CreateSalary)
		salaries.GET("", h.ListSalaries)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", middleware.StaffOnly(), h.SubmitExpense)
		expenses.GET("", middleware.ManagerOnly(), h.ListExpenses)
	}

	rg.POST("/billing/run", middleware.ManagerOnly(), h.RunBilling)
}

func (h *Handler) bindDecision(c *gin.Context) (int64, Kind, string, bool) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return 0, "", "", false
	}

	var req DecisionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return 0, "", "", false
		}
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return 0, "", "", false
	}

	kind, err := ParseKind(req.Type)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return 0, "", "", false
	}
	return id, kind, req.Reason, true
}

// Approve decides a pending payment, salary or expense.
// @Summary		Approve payment
// @Description	Managers only. type is booking (default), salary or expense. Approving a booking payment confirms a PENDING booking.
// @Tags		Payments
// @Security	BearerAuth
// @Param		id	path	int	true	"entity id"
// @Param		request	body	DecisionRequest	false	"type"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "unknown type or not pending"
// @Failure		403	{object}	map[string]interface{} "managers only"
// @Failure		404	{object}	map[string]interface{} "not found"
// @Router		/payments/{id}/approve [PUT]
func (h *Handler) Approve(c *gin.Context) {
	id, kind, _, ok := h.bindDecision(c)
	if !ok {
		return
	}
	out, err := h.service.Approve(c.Request.Context(), kind, id, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// Reject declines a pending payment, salary or expense.
// @Summary		Reject payment
// @Description	Managers only. Expense rejections require a reason. Rejected booking payments leave the booking untouched.
// @Tags		Payments
// @Security	BearerAuth
// @Param		id	path	int	true	"entity id"
// @Param		request	body	DecisionRequest	false	"type, reason"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "unknown type, missing reason or not pending"
// @Failure		403	{object}	map[string]interface{} "managers only"
// @Failure		404	{object}	map[string]interface{} "not found"
// @Router		/payments/{id}/reject [PUT]
func (h *Handler) Reject(c *gin.Context) {
	id, kind, reason, ok := h.bindDecision(c)
	if !ok {
		return
	}
	out, err := h.service.Reject(c.Request.Context(), kind, id, middleware.UserID(c), reason)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CreatePayment records a payment against a booking.
// @Summary		Record payment
// @Description	Records a PENDING payment for a booking. Guests may only pay their own bookings.
// @Tags		Payments
// @Security	BearerAuth
// @Param		request	body	CreatePaymentRequest	true	"bookingId, amount, method"
// @Success		201	{object}	map[string]interface{} "created"
// @Failure		400	{object}	map[string]interface{} "validation error"
// @Failure		403	{object}	map[string]interface{} "booking of another guest"
// @Failure		404	{object}	map[string]interface{} "booking not found"
// @Router		/payments [POST]
func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	p, err := h.service.RecordPayment(c.Request.Context(), PaymentInput{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method))),
		Notes:     req.Notes,
	}, Actor{ID: middleware.UserID(c), Staff: middleware.IsStaff(c)})
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

// ListPayments returns payments by hostel and approval status.
// @Summary		List payments
// @Description	Staff only.
// @Tags		Payments
// @Security	BearerAuth
// @Param		hostelId	query	int	false	"hostel id"
// @Param		bookingId	query	int	false	"booking id"
// @Param		approvalStatus	query	string	false	"PENDING, APPROVED or REJECTED"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		403	{object}	map[string]interface{} "staff only"
// @Router		/payments [GET]
func (h *Handler) ListPayments(c *gin.Context) {
	f := repository.PaymentFilter{
		ApprovalStatus: domain.ApprovalStatus(strings.ToUpper(c.Query("approvalStatus"))),
		Limit:          request.QueryInt(c, "limit", 20),
		Offset:         request.QueryInt(c, "offset", 0),
	}
	var err error
	if f.HostelID, err = request.QueryID(c, "hostelId"); err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	if f.BookingID, err = request.QueryID(c, "bookingId"); err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}

	list, err := h.service.ListPayments(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": list})
}

// CreateSalary queues a salary payout.
// @Summary		Create salary payout
// @Description	Managers only. month is YYYY-MM.
// @Tags		Payroll
// @Security	BearerAuth
// @Param		request	body	CreateSalaryRequest	true	"hostelId, employeeId, amount, month"
// @Success		201	{object}	map[string]interface{} "created"
// @Failure		400	{object}	map[string]interface{} "validation error"
// @Failure		404	{object}	map[string]interface{} "hostel or employee not found"
// @Router		/salaries [POST]
func (h *Handler) CreateSalary(c *gin.Context) {
	var req CreateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	s, err := h.service.CreateSalary(c.Request.Context(), SalaryInput(req))
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"salary": s})
}

// ListSalaries returns salary payouts.
// @Summary		List salary payouts
// @Description	Managers only.
// @Tags		Payroll
// @Security	BearerAuth
// @Param		hostelId	query	int	false	"hostel id"
// @Param		status	query	string	false	"PENDING, PAID or REJECTED"
// @Success		200	{object}	map[string]interface{} "ok"
// @Router		/salaries [GET]
func (h *Handler) ListSalaries(c *gin.Context) {
	hostelID, err := request.QueryID(c, "hostelId")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	status := domain.SalaryStatus(strings.ToUpper(c.Query("status")))

	list, err := h.service.ListSalaries(c.Request.Context(), hostelID, status)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"salaries": list})
}

// SubmitExpense files an expense claim.
// @Summary		Submit expense
// @Description	Staff only.
// @Tags		Payroll
// @Security	BearerAuth
// @Param		request	body	CreateExpenseRequest	true	"hostelId, category, description, amount"
// @Success		201	{object}	map[string]interface{} "created"
// @Failure		400	{object}	map[string]interface{} "validation error"
// @Failure		404	{object}	map[string]interface{} "hostel not found"
// @Router		/expenses [POST]
func (h *Handler) SubmitExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	e, err := h.service.SubmitExpense(c.Request.Context(), ExpenseInput(req), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"expense": e})
}

// ListExpenses returns expense claims.
// @Summary		List expenses
// @Description	Managers only.
// @Tags		Payroll
// @Security	BearerAuth
// @Param		hostelId	query	int	false	"hostel id"
// @Param		status	query	string	false	"PENDING, APPROVED or REJECTED"
// @Success		200	{object}	map[string]interface{} "ok"
// @Router		/expenses [GET]
func (h *Handler) ListExpenses(c *gin.Context) {
	hostelID, err := request.QueryID(c, "hostelId")
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	status := domain.ExpenseStatus(strings.ToUpper(c.Query("status")))

	list, err := h.service.ListExpenses(c.Request.Context(), hostelID, status)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"expenses": list})
}

// RunBilling triggers monthly charges for ?period=YYYY-MM, defaulting to the
// current month.
// @Summary		Run monthly billing
// @Description	Managers only. Idempotent per booking and period.
// @Tags		Payments
// @Security	BearerAuth
// @Param		period	query	string	false	"YYYY-MM"
// @Success		200	{object}	map[string]interface{} "ok"
// @Failure		400	{object}	map[string]interface{} "invalid period"
// @Router		/billing/run [POST]
func (h *Handler) RunBilling(c *gin.Context) {
	period := strings.TrimSpace(c.Query("period"))
	if period == "" {
		period = h.billing.now().Format("2006-01")
	}
	created, err := h.billing.GenerateMonthlyCharges(c.Request.Context(), period)
	if err != nil {
		response.FromError(c, err, h.exposeDetail)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"period": period, "created": created})
}
