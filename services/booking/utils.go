package booking

import (
	"fmt"
	"strings"
	"time"

	"gochinamed/models"
	"gochinamed/services/itinerary"
)

func validateIntent(intent models.BookingIntent) error {
	if strings.TrimSpace(intent.OriginCity) == "" {
		return fmt.Errorf("originCity is required")
	}
	if strings.TrimSpace(intent.DestinationCity) == "" {
		return fmt.Errorf("destinationCity is required")
	}
	if intent.Travelers < 0 {
		return fmt.Errorf("travelers must not be negative")
	}
	if intent.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	if _, _, err := itinerary.ParseDate(intent.TravelDate, time.UTC); err != nil {
		return fmt.Errorf("travelDate: %v", err)
	}
	if strings.TrimSpace(intent.ReturnDate) != "" {
		if _, _, err := itinerary.ParseDate(intent.ReturnDate, time.UTC); err != nil {
			return fmt.Errorf("returnDate: %v", err)
		}
	}
	for i, a := range intent.Attractions {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("attractions[%d].name is required", i)
		}
		if a.Price < 0 {
			return fmt.Errorf("attractions[%d].price must not be negative", i)
		}
	}
	return nil
}

func validateConfirmRequest(req models.ConfirmRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("userId is required")
	}
	if err := validateIntent(req.Intent); err != nil {
		return err
	}
	if !validPaymentMethod(req.Payment.Method) {
		return fmt.Errorf("payment.method must be one of card, cash, bank_transfer")
	}
	if req.Document != nil {
		if strings.TrimSpace(req.Document.PassportNumber) == "" {
			return fmt.Errorf("document.passportNumber is required when a document is given")
		}
		if strings.TrimSpace(req.Document.Country) == "" {
			return fmt.Errorf("document.country is required when a document is given")
		}
	}
	return nil
}
