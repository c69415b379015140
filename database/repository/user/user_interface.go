package userRepo

import (
	"context"

	"gochinamed/models"
)

// UserRepository defines methods for the travel-profile part of a user.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID. Missing users return (nil, nil).
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateTravelPreferences upserts the last-used cities and budget.
	UpdateTravelPreferences(ctx context.Context, id string, prefs models.TravelPreferences) error
	// UpdateTravelDocument upserts the encrypted passport record.
	UpdateTravelDocument(ctx context.Context, id string, doc models.TravelDocument) error
}
