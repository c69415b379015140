package itinerary

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gochinamed/models"
	"gochinamed/services/flight"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	departureHour       = 8
	returnHour          = 14
	appointmentHour     = 10
	attractionHour      = 14
	attractionRetryHour = 10

	checkInBuffer       = 4 * time.Hour
	minRestAfterArrival = 20 * time.Hour
	returnBuffer        = 24 * time.Hour
	appointmentDuration = 60 * time.Minute
	attractionGap       = 30 * time.Minute

	defaultAttractionMinutes = 180
	defaultRouteTimeout      = 5 * time.Second
)

// Warning codes.
const (
	WarnRouteFallback          = "route_fallback"
	WarnHotelCheckInClamped    = "hotel_checkin_clamped"
	WarnAppointmentHintIgnored = "appointment_hint_ignored"
	WarnAppointmentClamped     = "appointment_clamped"
	WarnAppointmentUnsnapped   = "appointment_unsnapped"
	WarnAppointmentInfeasible  = "appointment_window_infeasible"
	WarnAttractionsOmitted     = "attractions_omitted"
	WarnAttractionOmitted      = "attraction_omitted"
)

// Request is one itinerary to lay out.
type Request struct {
	OrderID string
	Plan    models.PlanOption // normalized
	Intent  models.BookingIntent
}

// Result holds the pending entries plus what had to be forced or dropped.
type Result struct {
	Entries             []models.ItineraryEntry  `json:"entries"`
	Warnings            []models.ScheduleWarning `json:"warnings,omitempty"`
	AppointmentFeasible bool                     `json:"appointmentFeasible"`
	Arrival             time.Time                `json:"arrival"`
	Return              time.Time                `json:"return"`
}

func (r *Result) warn(code, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, models.ScheduleWarning{Code: code, Message: fmt.Sprintf(format, args...)})
}

type entryFunc func(kind, name string, start, end time.Time, price float64) models.ItineraryEntry

// Scheduler places flights, hotel, the medical appointment and attractions on one timeline.
type Scheduler struct {
	routes       flight.RouteEstimator
	loc          *time.Location
	routeTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewScheduler builds a scheduler. routes may be nil, in which case every
// cross-city trip gets fallback segments.
func NewScheduler(routes flight.RouteEstimator, loc *time.Location, routeTimeout time.Duration, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if routeTimeout <= 0 {
		routeTimeout = defaultRouteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{routes: routes, loc: loc, routeTimeout: routeTimeout, logger: logger, now: time.Now}
}

// Schedule never fails on tight windows; it clamps or omits and says so in
// Result.Warnings. Only unparseable dates are errors.
func (s *Scheduler) Schedule(ctx context.Context, req Request) (*Result, error) {
	intent := req.Intent
	plan := req.Plan

	// Step 1: departure and return boundaries.
	departure, dateOnly, err := ParseDate(intent.TravelDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid travelDate: %w", err)
	}
	if dateOnly {
		departure = atHour(departure, departureHour, s.loc)
	}
	returnTime, err := s.returnTime(intent, plan, departure)
	if err != nil {
		return nil, err
	}
	if returnTime.Before(departure) {
		return nil, fmt.Errorf("returnDate %s is before travelDate %s", intent.ReturnDate, intent.TravelDate)
	}

	res := &Result{Return: returnTime, AppointmentFeasible: true}
	created := s.now()
	var newEntry entryFunc = func(kind, name string, start, end time.Time, price float64) models.ItineraryEntry {
		return models.ItineraryEntry{
			ID:        uuid.New().String(),
			OrderID:   req.OrderID,
			Kind:      kind,
			Name:      name,
			StartTime: start,
			EndTime:   end,
			Price:     price,
			Status:    models.EntryStatusPending,
			Metadata:  map[string]interface{}{},
			CreatedAt: created,
			UpdatedAt: created,
		}
	}

	// Step 2: flights.
	arrival := departure
	if !intent.SameCity() {
		var outbound, inbound []models.FlightSegment
		if route, ok := s.route(ctx, res, intent.OriginCity, intent.DestinationCity); ok {
			outbound = flight.SynthesizeSegments(route, intent.OriginCity, intent.DestinationCity, departure)
			inbound = flight.SynthesizeSegments(flight.ReverseRoute(route), intent.DestinationCity, intent.OriginCity, returnTime)
		} else {
			outbound = flight.FallbackSegments(intent.OriginCity, intent.DestinationCity, departure)
			inbound = flight.FallbackSegments(intent.DestinationCity, intent.OriginCity, returnTime)
		}
		arrival = outbound[len(outbound)-1].Arrival

		outPrice := math.Round(plan.FlightFee*50) / 100
		out := newEntry(models.EntryKindFlight, fmt.Sprintf("Flight %s to %s", intent.OriginCity, intent.DestinationCity),
			departure, arrival, outPrice)
		out.Location = intent.OriginCity
		out.Description = describeSegments(outbound)
		out.Metadata["direction"] = "outbound"
		out.Metadata["segments"] = outbound
		out.Metadata["flightClass"] = plan.FlightClass

		in := newEntry(models.EntryKindFlight, fmt.Sprintf("Flight %s to %s", intent.DestinationCity, intent.OriginCity),
			returnTime, inbound[len(inbound)-1].Arrival, math.Round((plan.FlightFee-outPrice)*100)/100)
		in.Location = intent.DestinationCity
		in.Description = describeSegments(inbound)
		in.Metadata["direction"] = "inbound"
		in.Metadata["segments"] = inbound
		in.Metadata["flightClass"] = plan.FlightClass

		res.Entries = append(res.Entries, out, in)
	}
	res.Arrival = arrival
	boundary := returnTime.Add(-returnBuffer)

	// Step 3: hotel.
	checkIn := arrival.Add(checkInBuffer)
	if checkIn.After(boundary) {
		checkIn = boundary
		if checkIn.Before(arrival) {
			checkIn = arrival
		}
		res.warn(WarnHotelCheckInClamped, "check-in moved to %s to respect the return boundary", checkIn.Format(time.RFC3339))
	}
	checkOut := returnTime
	if checkOut.Before(checkIn) {
		checkOut = checkIn
	}
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	hotelName := plan.HotelName
	if hotelName == "" {
		hotelName = "Hotel stay in " + intent.DestinationCity
	}
	hotel := newEntry(models.EntryKindHotel, hotelName, checkIn, checkOut, plan.HotelFee)
	hotel.Location = intent.DestinationCity
	hotel.Metadata["nights"] = nights
	hotel.Metadata["stars"] = plan.HotelStars
	res.Entries = append(res.Entries, hotel)

	// Step 4: medical appointment.
	medStart := s.appointmentStart(res, intent, arrival, returnTime)
	medEnd := medStart.Add(appointmentDuration)
	medical := newEntry(models.EntryKindMedical, "Medical appointment", medStart, medEnd, plan.MedicalFee)
	medical.Description = plan.MedicalPlan
	medical.Location = intent.DestinationCity
	if plan.HospitalID != "" {
		medical.Metadata["hospitalId"] = plan.HospitalID
	}
	if plan.DoctorID != "" {
		medical.Metadata["doctorId"] = plan.DoctorID
	}
	medical.Metadata["feasible"] = res.AppointmentFeasible
	res.Entries = append(res.Entries, medical)

	// Step 5: attractions.
	if len(intent.Attractions) > 0 {
		res.Entries = append(res.Entries, s.attractions(res, intent, arrival, boundary, medStart, medEnd, newEntry)...)
	}

	if len(res.Warnings) > 0 {
		s.logger.Info("itinerary scheduled with adjustments",
			zap.String("orderId", req.OrderID), zap.Any("warnings", res.Warnings))
	}
	return res, nil
}

func (s *Scheduler) returnTime(intent models.BookingIntent, plan models.PlanOption, departure time.Time) (time.Time, error) {
	if strings.TrimSpace(intent.ReturnDate) != "" {
		ret, dateOnly, err := ParseDate(intent.ReturnDate, s.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid returnDate: %w", err)
		}
		if dateOnly {
			ret = atHour(ret, returnHour, s.loc)
		}
		return ret, nil
	}
	days := plan.DurationDays
	if days < 1 {
		days = 1
	}
	return atHour(departure.AddDate(0, 0, days-1), returnHour, s.loc), nil
}

// route asks the route estimator under its own timeout. ok is false when the
// caller should fall back to synthetic segments.
func (s *Scheduler) route(ctx context.Context, res *Result, from, to string) (flight.RouteEstimate, bool) {
	if s.routes != nil {
		rctx, cancel := context.WithTimeout(ctx, s.routeTimeout)
		route, err := s.routes.EstimateRoute(rctx, from, to)
		cancel()
		if err == nil {
			return route, true
		}
		s.logger.Warn("route estimate failed", zap.String("from", from), zap.String("to", to), zap.Error(err))
	}
	res.warn(WarnRouteFallback, "no route data for %s to %s, using a %d-minute estimate", from, to, flight.FallbackSegmentMinutes)
	return flight.RouteEstimate{}, false
}

func (s *Scheduler) appointmentStart(res *Result, intent models.BookingIntent, arrival, returnTime time.Time) time.Time {
	minStart := arrival.Add(minRestAfterArrival)
	maxStart := returnTime.Add(-returnBuffer)

	if !minStart.Before(maxStart) {
		res.AppointmentFeasible = false
		start := arrival.Add(24 * time.Hour)
		res.warn(WarnAppointmentInfeasible, "arrival %s and return %s leave no valid appointment slot; placed at %s",
			arrival.Format(time.RFC3339), returnTime.Format(time.RFC3339), start.Format(time.RFC3339))
		return start
	}

	target := atHour(arrival.AddDate(0, 0, 1), appointmentHour, s.loc)
	if strings.TrimSpace(intent.AppointmentDate) != "" {
		hint, dateOnly, err := ParseDate(intent.AppointmentDate, s.loc)
		if err == nil && dateOnly {
			hint = atHour(hint, appointmentHour, s.loc)
		}
		if err == nil && !hint.Before(minStart) && !hint.After(maxStart) {
			target = hint
		} else {
			res.warn(WarnAppointmentHintIgnored, "requested appointment %q is outside the allowed window", intent.AppointmentDate)
		}
	}

	switch {
	case target.Before(minStart):
		snapped := atHour(minStart, appointmentHour, s.loc)
		if snapped.Before(minStart) {
			snapped = atHour(minStart.AddDate(0, 0, 1), appointmentHour, s.loc)
		}
		if snapped.After(maxStart) {
			res.warn(WarnAppointmentUnsnapped, "no 10:00 slot after the rest period; using %s", minStart.Format(time.RFC3339))
			snapped = minStart
		}
		res.warn(WarnAppointmentClamped, "appointment moved later to respect the rest period")
		return snapped
	case target.After(maxStart):
		snapped := atHour(maxStart, appointmentHour, s.loc)
		if snapped.After(maxStart) {
			snapped = atHour(maxStart.AddDate(0, 0, -1), appointmentHour, s.loc)
		}
		if snapped.Before(minStart) {
			res.warn(WarnAppointmentUnsnapped, "no 10:00 slot before the return buffer; using %s", maxStart.Format(time.RFC3339))
			snapped = maxStart
		}
		res.warn(WarnAppointmentClamped, "appointment moved earlier to respect the return buffer")
		return snapped
	}
	return target
}

func (s *Scheduler) attractions(res *Result, intent models.BookingIntent, arrival, boundary, medStart, medEnd time.Time, newEntry entryFunc) []models.ItineraryEntry {
	slot := atHour(medStart.AddDate(0, 0, 1), attractionHour, s.loc)
	if !slot.Before(boundary) {
		slot = atHour(arrival.AddDate(0, 0, 2), attractionRetryHour, s.loc)
	}
	earliest := arrival.Add(24 * time.Hour)
	if slot.Before(earliest) || !slot.Before(boundary) || slot.Before(medEnd) {
		res.warn(WarnAttractionsOmitted, "no sightseeing slot between %s and %s", earliest.Format(time.RFC3339), boundary.Format(time.RFC3339))
		return nil
	}

	var entries []models.ItineraryEntry
	cursor := slot
	for _, a := range intent.Attractions {
		minutes := a.DurationMinutes
		if minutes <= 0 {
			minutes = defaultAttractionMinutes
		}
		end := cursor.Add(time.Duration(minutes) * time.Minute)
		if end.After(boundary) {
			res.warn(WarnAttractionOmitted, "%s does not fit before the return buffer", a.Name)
			continue
		}
		e := newEntry(models.EntryKindAttraction, a.Name, cursor, end, a.Price)
		e.Location = a.Location
		if e.Location == "" {
			e.Location = intent.DestinationCity
		}
		e.Metadata["attractionId"] = a.ID
		entries = append(entries, e)
		cursor = end.Add(attractionGap)
	}
	return entries
}

func describeSegments(segs []models.FlightSegment) string {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		parts = append(parts, fmt.Sprintf("%s %s-%s", seg.FlightNumber, seg.From, seg.To))
	}
	return strings.Join(parts, ", ")
}
