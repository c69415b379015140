package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Plan endpoints
	GeneratePlansHandler gin.HandlerFunc

	// Booking endpoints
	ConfirmBookingHandler gin.HandlerFunc
	GetOrderHandler       gin.HandlerFunc
	GetItineraryHandler   gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the bundle from the booking handler.
func NewHandlerBundle(bh *BookingHandler, health gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		GeneratePlansHandler:  bh.GeneratePlans,
		ConfirmBookingHandler: bh.ConfirmBooking,
		GetOrderHandler:       bh.GetOrder,
		GetItineraryHandler:   bh.GetItinerary,
		HealthHandler:         health,
	}
}
