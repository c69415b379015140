package orderRepo

import (
	"context"
	"time"

	"gochinamed/models"
)

// OrderRepository defines methods for order data access. Lookups return
// (nil, nil) when nothing matches.
type OrderRepository interface {
	// Create inserts a new order.
	Create(ctx context.Context, order *models.Order) error
	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// FindRecentByAmount returns the user's newest order with the given amount key created at or after since.
	FindRecentByAmount(ctx context.Context, userID string, amountKey float64, since time.Time) (*models.Order, error)
	// GetByIdempotencyKey returns the user's order submitted with key.
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*models.Order, error)
	// ConfirmDoctorAppointment moves a pending appointment to confirmed. It reports whether anything changed.
	ConfirmDoctorAppointment(ctx context.Context, id, ref string) (bool, error)
	// ConfirmServiceReservation moves a pending reservation to confirmed. It reports whether anything changed.
	ConfirmServiceReservation(ctx context.Context, id string) (bool, error)
}
