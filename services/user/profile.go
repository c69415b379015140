package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gochinamed/models"
)

func (s *DefaultProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return u, nil
}

// UpdatePreferences remembers the cities and budget of the latest plan request.
func (s *DefaultProfileService) UpdatePreferences(ctx context.Context, userID string, intent models.BookingIntent) error {
	prefs := models.TravelPreferences{
		OriginCity:      strings.TrimSpace(intent.OriginCity),
		DestinationCity: strings.TrimSpace(intent.DestinationCity),
		Budget:          intent.Budget,
	}
	if err := s.Repo.UpdateTravelPreferences(ctx, userID, prefs); err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	return nil
}

// SaveDocument stores the passport number encrypted and returns the masked
// snapshot that goes on the order.
func (s *DefaultProfileService) SaveDocument(ctx context.Context, userID string, doc models.DocumentDetails) (*models.DocumentSnapshot, error) {
	number := normalizePassport(doc.PassportNumber)
	if number == "" {
		return nil, fmt.Errorf("passport number is empty")
	}
	if s.Cipher == nil {
		return nil, fmt.Errorf("document encryption is not configured")
	}

	encrypted, err := s.Cipher.Encrypt(number)
	if err != nil {
		return nil, err
	}
	snapshot := &models.DocumentSnapshot{
		Country:        strings.ToUpper(strings.TrimSpace(doc.Country)),
		PassportMasked: MaskPassport(number),
	}
	record := models.TravelDocument{
		Country:           snapshot.Country,
		PassportEncrypted: encrypted,
		PassportMasked:    snapshot.PassportMasked,
		UpdatedAt:         time.Now(),
	}
	if err := s.Repo.UpdateTravelDocument(ctx, userID, record); err != nil {
		return nil, fmt.Errorf("failed to store travel document: %w", err)
	}
	return snapshot, nil
}

func normalizePassport(number string) string {
	return strings.ToUpper(strings.Join(strings.Fields(number), ""))
}

// MaskPassport keeps the last four characters.
func MaskPassport(number string) string {
	if len(number) <= 4 {
		return strings.Repeat("*", len(number))
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
