package user

import (
	"context"

	userRepo "gochinamed/database/repository/user"
	"gochinamed/models"
)

// ProfileService maintains the travel-profile side of a user.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdatePreferences(ctx context.Context, userID string, intent models.BookingIntent) error
	SaveDocument(ctx context.Context, userID string, doc models.DocumentDetails) (*models.DocumentSnapshot, error)
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	Repo   userRepo.UserRepository
	Cipher *DocumentCipher
}
