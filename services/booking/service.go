package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gochinamed/database/repository"
	"gochinamed/models"
	"gochinamed/services/flight"
	"gochinamed/services/itinerary"
	"gochinamed/services/plan"
	"gochinamed/services/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService. Profiles and Dispatcher may be nil.
type DefaultBookingService struct {
	Generator           PlanGenerator
	Fares               flight.FareEstimator
	Scheduler           ItineraryScheduler
	Guard               *DuplicateGuard
	Payments            PaymentHandler
	Orders              repository.OrderRepository
	Itinerary           repository.ItineraryRepository
	Profiles            ProfileUpdater
	Dispatcher          TaskDispatcher
	FeePolicy           pricing.ServiceFeePolicy
	CollaboratorTimeout time.Duration
	Logger              *zap.Logger
}

func (s *DefaultBookingService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// GeneratePlans prices three plans for the intent. Collaborator failures only
// change where the numbers come from, never whether plans are returned.
func (s *DefaultBookingService) GeneratePlans(ctx context.Context, intent models.BookingIntent) ([]models.PlanOption, error) {
	if err := validateIntent(intent); err != nil {
		return nil, NewValidationError(err.Error())
	}

	category := pricing.ResolveCategory(intent)
	travelers := intent.TravelerCount()
	fares := plan.QuoteFares(ctx, s.Fares, intent.OriginCity, intent.DestinationCity, travelers, s.CollaboratorTimeout, s.log())

	plans := s.Generator.Generate(ctx, plan.Input{
		Intent:    intent,
		Category:  category,
		Fares:     fares,
		Budget:    intent.Budget,
		Travelers: travelers,
	})

	if s.Profiles != nil && strings.TrimSpace(intent.UserID) != "" {
		if err := s.Profiles.UpdatePreferences(ctx, intent.UserID, intent); err != nil {
			s.log().Warn("failed to update travel preferences", zap.String("userId", intent.UserID), zap.Error(err))
		}
	}

	s.log().Info("plans generated",
		zap.String("category", string(category)),
		zap.String("origin", intent.OriginCity),
		zap.String("destination", intent.DestinationCity),
		zap.Int("count", len(plans)))
	return plans, nil
}

// ConfirmBooking re-prices the client's plan, suppresses double submissions,
// lays out the itinerary, takes the (simulated) payment and records the order.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error) {
	if err := validateConfirmRequest(req); err != nil {
		return nil, NewValidationError(err.Error())
	}
	intent := req.Intent
	intent.UserID = req.UserID
	category := pricing.ResolveCategory(intent)
	hasSelection := intent.HasMedicalSelection()

	draft := req.Plan
	if hasSelection {
		draft.DoctorID = intent.DoctorID
		draft.HospitalID = intent.HospitalID
	}
	settlement := pricing.Settle(pricing.SettleInput{
		Plan:                draft,
		Category:            category,
		HasMedicalSelection: hasSelection,
		Travelers:           intent.TravelerCount(),
		TicketTotal:         intent.TicketTotal(),
		Policy:              s.FeePolicy,
	})
	normalized := settlement.Plan

	amountKey := GuardAmount(settlement.MedicalFee, settlement.HotelFee, settlement.FlightFee)
	if s.Guard != nil {
		if decision := s.Guard.Check(ctx, req.UserID, amountKey, req.IdempotencyKey); decision.Reuse() {
			s.log().Info("duplicate submission, reusing order",
				zap.String("orderId", decision.Existing.ID), zap.String("reason", decision.Reason))
			return resultFromOrder(decision.Existing, true), nil
		}
	}

	orderID := uuid.New().String()
	schedule, err := s.Scheduler.Schedule(ctx, itinerary.Request{OrderID: orderID, Plan: normalized, Intent: intent})
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		UserID:      req.UserID,
		Amount:      settlement.TotalAmount,
		Method:      req.Payment.Method,
		Currency:    settlement.Currency,
		Idempotency: orderID,
		Description: fmt.Sprintf("%s: %s to %s", normalized.Name, intent.OriginCity, intent.DestinationCity),
	})
	if err != nil {
		return nil, NewInternalError("payment failed", err)
	}

	var document *models.DocumentSnapshot
	if req.Document != nil && s.Profiles != nil {
		document, err = s.Profiles.SaveDocument(ctx, req.UserID, *req.Document)
		if err != nil {
			s.log().Warn("failed to store travel document", zap.String("userId", req.UserID), zap.Error(err))
		}
	}

	appointmentStatus := models.AppointmentStatusNotRequired
	if hasSelection {
		appointmentStatus = models.AppointmentStatusPending
	}
	order := &models.Order{
		ID:                       orderID,
		UserID:                   req.UserID,
		PlanID:                   normalized.ID,
		PlanName:                 normalized.Name,
		IdempotencyKey:           strings.TrimSpace(req.IdempotencyKey),
		Plan:                     normalized,
		TicketFee:                settlement.TicketFee,
		Subtotal:                 settlement.Subtotal,
		ServiceFees:              settlement.ServiceFees,
		ServiceFee:               settlement.ServiceFee,
		TotalAmount:              settlement.TotalAmount,
		Currency:                 settlement.Currency,
		AmountKey:                amountKey,
		Status:                   invoice.Status,
		Payment:                  models.OrderPayment{Method: invoice.Method, InvoiceID: invoice.InvoiceID, PaymentID: invoice.PaymentID, Status: invoice.Status},
		DoctorAppointmentStatus:  appointmentStatus,
		ServiceReservationStatus: models.ReservationStatusPending,
		TreatmentCategory:        category,
		OriginCity:               strings.TrimSpace(intent.OriginCity),
		DestinationCity:          strings.TrimSpace(intent.DestinationCity),
		DoctorID:                 normalized.DoctorID,
		HospitalID:               normalized.HospitalID,
		Document:                 document,
		AppointmentFeasible:      schedule.AppointmentFeasible,
		ScheduleWarnings:         schedule.Warnings,
	}
	// Entries go first: the duplicate guard only sees stored orders, so an order
	// must never exist without its itinerary.
	if err := s.Itinerary.CreateMany(ctx, schedule.Entries); err != nil {
		return nil, NewInternalError("failed to store itinerary", err)
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, NewInternalError("failed to store order", err)
	}

	s.dispatchConfirmations(ctx, order, hasSelection)

	s.log().Info("booking confirmed",
		zap.String("orderId", order.ID),
		zap.String("userId", order.UserID),
		zap.Float64("totalAmount", order.TotalAmount),
		zap.Bool("appointmentFeasible", schedule.AppointmentFeasible),
		zap.Int("warnings", len(schedule.Warnings)))

	return resultFromOrder(order, false), nil
}

func (s *DefaultBookingService) dispatchConfirmations(ctx context.Context, order *models.Order, hasSelection bool) {
	if s.Dispatcher == nil {
		return
	}
	payload := models.ConfirmationPayload{
		OrderID:    order.ID,
		UserID:     order.UserID,
		DoctorID:   order.DoctorID,
		HospitalID: order.HospitalID,
	}
	if hasSelection {
		if err := s.Dispatcher.DispatchDoctorConfirmation(ctx, payload); err != nil {
			s.log().Error("failed to enqueue doctor confirmation", zap.String("orderId", order.ID), zap.Error(err))
		}
	}
	if err := s.Dispatcher.DispatchItineraryConfirmation(ctx, payload); err != nil {
		s.log().Error("failed to enqueue itinerary confirmation", zap.String("orderId", order.ID), zap.Error(err))
	}
}

// GetOrder returns a stored order.
func (s *DefaultBookingService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, NewValidationError("order id is required")
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, NewInternalError("failed to load order", err)
	}
	if order == nil {
		return nil, NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}
	return order, nil
}

// GetItinerary returns the order's entries in start-time order.
func (s *DefaultBookingService) GetItinerary(ctx context.Context, orderID string) (*ItineraryView, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	entries, err := s.Itinerary.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, NewInternalError("failed to load itinerary", err)
	}
	if entries == nil {
		entries = []models.ItineraryEntry{}
	}
	return &ItineraryView{
		OrderID:                  order.ID,
		Status:                   order.Status,
		DoctorAppointmentStatus:  order.DoctorAppointmentStatus,
		ServiceReservationStatus: order.ServiceReservationStatus,
		Entries:                  entries,
	}, nil
}

func resultFromOrder(order *models.Order, reused bool) *models.ConfirmResult {
	return &models.ConfirmResult{
		OrderID:             order.ID,
		Reused:              reused,
		Status:              order.Status,
		Subtotal:            order.Subtotal,
		ServiceFee:          order.ServiceFee,
		TotalAmount:         order.TotalAmount,
		Currency:            order.Currency,
		AppointmentFeasible: order.AppointmentFeasible,
		Warnings:            order.ScheduleWarnings,
	}
}
