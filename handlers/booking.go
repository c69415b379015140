package handlers

import (
	"errors"
	"net/http"

	"gochinamed/models"
	"gochinamed/services/booking"
	"gochinamed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves plan generation and the payment-time booking flow.
type BookingHandler struct {
	BookingSvc booking.BookingService
	Logger     *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{BookingSvc: svc, Logger: logger}
}

// GeneratePlans handles POST /api/plans.
func (h *BookingHandler) GeneratePlans(c *gin.Context) {
	var intent models.BookingIntent
	if err := c.ShouldBindJSON(&intent); err != nil {
		h.respondError(c, booking.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	plans, err := h.BookingSvc.GeneratePlans(c.Request.Context(), intent)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// ConfirmBooking handles POST /api/bookings/confirm. A repeated submission
// answers 200 with the original order instead of 201.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var req models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, booking.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	result, err := h.BookingSvc.ConfirmBooking(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GetOrder handles GET /api/orders/:id.
func (h *BookingHandler) GetOrder(c *gin.Context) {
	order, err := h.BookingSvc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetItinerary handles GET /api/orders/:id/itinerary.
func (h *BookingHandler) GetItinerary(c *gin.Context) {
	view, err := h.BookingSvc.GetItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	logger := getLogger(c, h.Logger)

	var be *booking.BookingError
	if !errors.As(err, &be) {
		logger.Error("unexpected booking error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Code: booking.CodeInternal, Message: "internal error"})
		return
	}

	switch be.Code {
	case booking.CodeValidation:
		logger.Info("rejected booking request", zap.String("reason", be.Message))
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Code: be.Code, Message: be.Message})
	case booking.CodeNotFound:
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Code: be.Code, Message: be.Message})
	default:
		logger.Error("booking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Code: booking.CodeInternal, Message: be.Message})
	}
}
