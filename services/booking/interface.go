package booking

import (
	"context"

	"gochinamed/models"
	"gochinamed/services/itinerary"
	"gochinamed/services/plan"
)

// BookingService is the booking surface used by the HTTP handlers.
type BookingService interface {
	GeneratePlans(ctx context.Context, intent models.BookingIntent) ([]models.PlanOption, error)
	ConfirmBooking(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetItinerary(ctx context.Context, orderID string) (*ItineraryView, error)
}

// PlanGenerator proposes the three priced plans.
type PlanGenerator interface {
	Generate(ctx context.Context, in plan.Input) []models.PlanOption
}

// ItineraryScheduler lays out an order's entries.
type ItineraryScheduler interface {
	Schedule(ctx context.Context, req itinerary.Request) (*itinerary.Result, error)
}

// ProfileUpdater keeps the traveler's profile current. Failures never fail a booking.
type ProfileUpdater interface {
	UpdatePreferences(ctx context.Context, userID string, intent models.BookingIntent) error
	SaveDocument(ctx context.Context, userID string, doc models.DocumentDetails) (*models.DocumentSnapshot, error)
}

// TaskDispatcher hands confirmation work to the background queue.
type TaskDispatcher interface {
	DispatchDoctorConfirmation(ctx context.Context, payload models.ConfirmationPayload) error
	DispatchItineraryConfirmation(ctx context.Context, payload models.ConfirmationPayload) error
}

// ItineraryView is an order's entries with its confirmation state.
type ItineraryView struct {
	OrderID                  string                  `json:"orderId"`
	Status                   string                  `json:"status"`
	DoctorAppointmentStatus  string                  `json:"doctorAppointmentStatus"`
	ServiceReservationStatus string                  `json:"serviceReservationStatus"`
	Entries                  []models.ItineraryEntry `json:"entries"`
}
