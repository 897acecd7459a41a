package booking

import (
	"errors"
	"net/http"
	"strconv"

	"bhavan/internal/availability"
	"bhavan/internal/domain"
	"bhavan/internal/gateway"
	"bhavan/internal/pkg/dates"
	"bhavan/internal/pkg/response"
	"bhavan/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated user endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/check-availability", h.CheckAvailability)
	rg.POST("/bookings/create-order", h.CreateOrder)
	rg.POST("/bookings/verify-payment", h.VerifyPayment)
	rg.GET("/bookings/my-bookings", h.MyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/cancel", h.Cancel)
}

// RegisterAdminRoutes mounts endpoints for venue staff.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/admin/all", h.AdminList)
	rg.GET("/bookings/admin/upcoming", h.AdminUpcoming)
	rg.GET("/bookings/admin/stats", h.AdminStats)
	rg.POST("/bookings/admin/:id/cancel", h.AdminCancel)
	rg.PATCH("/bookings/admin/:id/check-in", h.AdminCheckIn)
	rg.PATCH("/bookings/admin/:id/check-out", h.AdminCheckOut)
	rg.PATCH("/bookings/admin/:id/no-show", h.AdminNoShow)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	reports, ok, err := h.service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to check availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"available": ok,
		"resources": reports,
	})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.CreateOrder(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create order")
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.VerifyPayment(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to verify payment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.MyBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), id, c.GetInt64("user_id"), domain.Role(c.GetString("role")))
	if err != nil {
		h.writeError(c, err, "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}
	b, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	f := repository.ListFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("from"); raw != "" {
		t, err := dates.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from: "+err.Error())
			return
		}
		f.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := dates.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to: "+err.Error())
			return
		}
		f.To = &t
	}

	bookings, err := h.service.ListAll(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) AdminUpcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	bookings, err := h.service.Upcoming(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list upcoming bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) AdminCancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}
	b, err := h.service.AdminCancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminCheckIn(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := h.service.CheckIn(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to check in")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminCheckOut(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to check out")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminNoShow(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := h.service.NoShow(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to mark no-show")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// writeError maps the booking error taxonomy onto HTTP responses: client
// mistakes become 4xx with the violated rule named, signature mismatches
// and gateway failures stay distinguishable, and anything unexpected is a
// generic 500.
func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var (
		avErr *AvailabilityError
		rule  *availability.RuleError
	)
	switch {
	case errors.As(err, &avErr):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_INVENTORY",
			avErr.Error(), gin.H{"insufficient": avErr.Insufficient()})
	case errors.As(err, &rule):
		response.Error(c, http.StatusUnprocessableEntity, "BOOKING_WINDOW", rule.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this booking")
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "SIGNATURE_MISMATCH", "Payment signature verification failed")
	case errors.Is(err, ErrOrderMismatch):
		response.Error(c, http.StatusBadRequest, "ORDER_MISMATCH", "Order does not belong to this booking")
	case errors.Is(err, domain.ErrAlreadyVerified):
		response.Error(c, http.StatusConflict, "ALREADY_VERIFIED", "Payment already verified for this booking")
	case errors.Is(err, domain.ErrNotCancellable):
		response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Booking can no longer be cancelled")
	case errors.Is(err, domain.ErrBadTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking is not in the required status")
	case errors.Is(err, gateway.ErrUnavailable):
		response.Error(c, http.StatusBadGateway, "GATEWAY_UNAVAILABLE", "Payment gateway is unreachable")
	case errors.Is(err, gateway.ErrOrderRejected):
		response.Error(c, http.StatusUnprocessableEntity, "ORDER_REJECTED", "Payment gateway rejected the order")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
