package booking

import (
	"context"
	"fmt"

	"gochinamed/database/repository"
	"gochinamed/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var providerRefPrefix = map[string]string{
	models.EntryKindFlight:  "FLT-",
	models.EntryKindHotel:   "HTL-",
	models.EntryKindMedical: "MED-",
}

// ConfirmationService runs the background confirmations. Both handlers can be
// retried any number of times: confirmed records are skipped.
type ConfirmationService struct {
	Orders    repository.OrderRepository
	Itinerary repository.ItineraryRepository
	Logger    *zap.Logger
}

func (c *ConfirmationService) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// ConfirmDoctorAppointment simulates the doctor accepting the appointment.
func (c *ConfirmationService) ConfirmDoctorAppointment(ctx context.Context, payload models.ConfirmationPayload) error {
	order, err := c.Orders.GetByID(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", payload.OrderID, err)
	}
	if order == nil {
		return NewNotFoundError(fmt.Sprintf("order %s not found", payload.OrderID))
	}
	if order.DoctorAppointmentStatus != models.AppointmentStatusPending {
		c.log().Debug("appointment already settled", zap.String("orderId", order.ID),
			zap.String("status", order.DoctorAppointmentStatus))
		return nil
	}

	changed, err := c.Orders.ConfirmDoctorAppointment(ctx, order.ID, "DOC-"+uuid.New().String())
	if err != nil {
		return err
	}
	c.log().Info("doctor appointment confirmed", zap.String("orderId", order.ID), zap.Bool("changed", changed))
	return nil
}

// ConfirmItinerary simulates the flight, hotel and medical providers accepting
// their reservations, then marks the order's reservation confirmed. Attraction
// tickets stay pending.
func (c *ConfirmationService) ConfirmItinerary(ctx context.Context, payload models.ConfirmationPayload) error {
	order, err := c.Orders.GetByID(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", payload.OrderID, err)
	}
	if order == nil {
		return NewNotFoundError(fmt.Sprintf("order %s not found", payload.OrderID))
	}

	entries, err := c.Itinerary.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	confirmed := 0
	for _, e := range entries {
		prefix, ok := providerRefPrefix[e.Kind]
		if !ok || e.Status != models.EntryStatusPending {
			continue
		}
		changed, err := c.Itinerary.ConfirmEntry(ctx, e.ID, prefix+uuid.New().String())
		if err != nil {
			return err
		}
		if changed {
			confirmed++
		}
	}

	if order.ServiceReservationStatus == models.ReservationStatusConfirmed {
		return nil
	}
	if _, err := c.Orders.ConfirmServiceReservation(ctx, order.ID); err != nil {
		return err
	}
	c.log().Info("itinerary confirmed", zap.String("orderId", order.ID), zap.Int("entries", confirmed))
	return nil
}
