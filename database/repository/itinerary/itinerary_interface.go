package itineraryRepo

import (
	"context"

	"gochinamed/models"
)

// ItineraryRepository stores the dated entries of an order.
type ItineraryRepository interface {
	CreateMany(ctx context.Context, entries []models.ItineraryEntry) error
	// ListByOrder returns the order's entries sorted by start time.
	ListByOrder(ctx context.Context, orderID string) ([]models.ItineraryEntry, error)
	// ConfirmEntry confirms a pending entry and records the provider reference.
	// It reports whether anything changed.
	ConfirmEntry(ctx context.Context, id, providerRef string) (bool, error)
}
