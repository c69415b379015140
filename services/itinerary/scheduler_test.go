package itinerary_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"gochinamed/models"
	"gochinamed/services/flight"
	"gochinamed/services/itinerary"
	"gochinamed/services/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRouteEstimator struct {
	mock.Mock
}

func (m *MockRouteEstimator) EstimateRoute(ctx context.Context, origin, destination string) (flight.RouteEstimate, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(flight.RouteEstimate), args.Error(1)
}

func surgeryPlan(days int) models.PlanOption {
	return pricing.Normalize(models.DraftPlan{
		Name:         "Standard Care Journey",
		Tier:         models.TierStandard,
		FlightFee:    models.Float(9360),
		HotelFee:     models.Float(5320),
		SurgeryFee:   models.Float(30000),
		MedicineFee:  models.Float(1500),
		NursingFee:   models.Float(2400),
		NutritionFee: models.Float(900),
		DurationDays: models.Int(days),
		HospitalID:   "hosp-1",
	}, models.CategorySurgery, true, 2)
}

func newScheduler(routes flight.RouteEstimator) *itinerary.Scheduler {
	return itinerary.NewScheduler(routes, time.UTC, time.Second, zap.NewNop())
}

func entriesOf(res *itinerary.Result, kind string) []models.ItineraryEntry {
	var out []models.ItineraryEntry
	for _, e := range res.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func warningCodes(res *itinerary.Result) []string {
	codes := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func utc(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSchedule_ParisToBeijing(t *testing.T) {
	s := newScheduler(flight.NewStaticRouteEstimator())

	res, err := s.Schedule(context.Background(), itinerary.Request{
		OrderID: "order-1",
		Plan:    surgeryPlan(8),
		Intent: models.BookingIntent{
			OriginCity:      "Paris",
			DestinationCity: "Beijing",
			TravelDate:      "2026-11-02",
			Travelers:       2,
			HospitalID:      "hosp-1",
		},
	})
	require.NoError(t, err)

	assert.True(t, res.AppointmentFeasible)
	assert.Equal(t, utc("2026-11-02T18:00:00Z"), res.Arrival)
	assert.Equal(t, utc("2026-11-09T14:00:00Z"), res.Return)

	flights := entriesOf(res, models.EntryKindFlight)
	require.Len(t, flights, 2)
	assert.Equal(t, utc("2026-11-02T08:00:00Z"), flights[0].StartTime)
	assert.Equal(t, res.Arrival, flights[0].EndTime)
	assert.Equal(t, res.Return, flights[1].StartTime)
	assert.Equal(t, 4680.0, flights[0].Price)
	assert.Equal(t, 4680.0, flights[1].Price)
	assert.Equal(t, "outbound", flights[0].Metadata["direction"])

	hotels := entriesOf(res, models.EntryKindHotel)
	require.Len(t, hotels, 1)
	assert.Equal(t, utc("2026-11-02T22:00:00Z"), hotels[0].StartTime)
	assert.Equal(t, res.Return, hotels[0].EndTime)
	assert.Equal(t, 7, hotels[0].Metadata["nights"])
	assert.Equal(t, 5320.0, hotels[0].Price)

	medical := entriesOf(res, models.EntryKindMedical)
	require.Len(t, medical, 1)
	assert.Equal(t, utc("2026-11-04T10:00:00Z"), medical[0].StartTime)
	assert.Equal(t, medical[0].StartTime.Add(time.Hour), medical[0].EndTime)
	assert.Equal(t, 34800.0, medical[0].Price)
	assert.Equal(t, "hosp-1", medical[0].Metadata["hospitalId"])
	assert.False(t, medical[0].StartTime.Before(res.Arrival.Add(20*time.Hour)))
	assert.False(t, medical[0].EndTime.After(res.Return.Add(-24*time.Hour)))
	assert.Contains(t, warningCodes(res), itinerary.WarnAppointmentClamped)

	for _, e := range res.Entries {
		assert.Equal(t, models.EntryStatusPending, e.Status)
		assert.Equal(t, "order-1", e.OrderID)
		assert.NotEmpty(t, e.ID)
	}
}

func TestSchedule_SameCityHasNoFlights(t *testing.T) {
	routes := new(MockRouteEstimator)
	s := newScheduler(routes)

	res, err := s.Schedule(context.Background(), itinerary.Request{
		Plan: surgeryPlan(3),
		Intent: models.BookingIntent{
			OriginCity:      "Shanghai",
			DestinationCity: " shanghai",
			TravelDate:      "2026-11-02",
		},
	})
	require.NoError(t, err)

	assert.Empty(t, entriesOf(res, models.EntryKindFlight))
	assert.Empty(t, res.Warnings)
	assert.Equal(t, utc("2026-11-02T08:00:00Z"), res.Arrival)
	assert.Equal(t, utc("2026-11-04T14:00:00Z"), res.Return)

	medical := entriesOf(res, models.EntryKindMedical)
	require.Len(t, medical, 1)
	assert.Equal(t, utc("2026-11-03T10:00:00Z"), medical[0].StartTime)
	routes.AssertNotCalled(t, "EstimateRoute", mock.Anything, mock.Anything, mock.Anything)
}

func TestSchedule_InfeasibleWindowStillPlacesAppointment(t *testing.T) {
	s := newScheduler(nil)

	res, err := s.Schedule(context.Background(), itinerary.Request{
		Plan: surgeryPlan(8),
		Intent: models.BookingIntent{
			OriginCity:      "Chengdu",
			DestinationCity: "Chengdu",
			TravelDate:      "2026-11-02",
			ReturnDate:      "2026-11-03",
		},
	})
	require.NoError(t, err)

	assert.False(t, res.AppointmentFeasible)
	assert.Contains(t, warningCodes(res), itinerary.WarnAppointmentInfeasible)
	medical := entriesOf(res, models.EntryKindMedical)
	require.Len(t, medical, 1)
	assert.Equal(t, utc("2026-11-03T08:00:00Z"), medical[0].StartTime)
	assert.Equal(t, false, medical[0].Metadata["feasible"])

	// 08:00 arrival plus the 4h buffer still fits before return - 24h
	hotels := entriesOf(res, models.EntryKindHotel)
	require.Len(t, hotels, 1)
	assert.Equal(t, utc("2026-11-02T12:00:00Z"), hotels[0].StartTime)
	assert.NotContains(t, warningCodes(res), itinerary.WarnHotelCheckInClamped)
}

func TestSchedule_TightReturnClampsCheckInToArrival(t *testing.T) {
	s := newScheduler(flight.NewStaticRouteEstimator())

	res, err := s.Schedule(context.Background(), itinerary.Request{
		Plan: surgeryPlan(8),
		Intent: models.BookingIntent{
			OriginCity:      "Paris",
			DestinationCity: "Beijing",
			TravelDate:      "2026-11-02",
			ReturnDate:      "2026-11-03",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, utc("2026-11-02T18:00:00Z"), res.Arrival)
	assert.Equal(t, utc("2026-11-03T14:00:00Z"), res.Return)
	assert.False(t, res.AppointmentFeasible)
	assert.Contains(t, warningCodes(res), itinerary.WarnHotelCheckInClamped)

	hotels := entriesOf(res, models.EntryKindHotel)
	require.Len(t, hotels, 1)
	assert.Equal(t, res.Arrival, hotels[0].StartTime)
	assert.Equal(t, res.Return, hotels[0].EndTime)
	assert.Equal(t, 1, hotels[0].Metadata["nights"])
}

func TestSchedule_ClampDownFallsBackToRawBound(t *testing.T) {
	s := newScheduler(nil)

	res, err := s.Schedule(context.Background(), itinerary.Request{
		Plan: surgeryPlan(8),
		Intent: models.BookingIntent{
			OriginCity:      "Hangzhou",
			DestinationCity: "Hangzhou",
			TravelDate:      "2026-11-02T00:00:00",
			ReturnDate:      "2026-11-04T05:00:00",
		},
	})
	require.NoError(t, err)

	assert.True(t, res.AppointmentFeasible)
	medical := entriesOf(res, models.EntryKindMedical)
	require.Len(t, medical, 1)
	assert.Equal(t, utc("2026-11-03T05:00:00Z"), medical[0].StartTime)
	assert.Contains(t, warningCodes(res), itinerary.WarnAppointmentUnsnapped)
	assert.Contains(t, warningCodes(res), itinerary.WarnAppointmentClamped)
}

func TestSchedule_RouteFailureUsesFallbackSegment(t *testing.T) {
	routes := new(MockRouteEstimator)
	routes.On("EstimateRoute", mock.Anything, "Lima", "Beijing").
		Return(flight.RouteEstimate{}, errors.New("upstream unavailable")).Once()
	s := newScheduler(routes)

	res, err := s.Schedule(context.Background(), itinerary.Request{
		Plan: surgeryPlan(8),
		Intent: models.BookingIntent{
			OriginCity:      "Lima",
			DestinationCity: "Beijing",
			TravelDate:      "2026-11-02T09:30:00Z",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{itinerary.WarnRouteFallback}, warningCodes(res)[:1])
	assert.Equal(t, utc("2026-11-02T11:30:00Z"), res.Arrival)

	flights := entriesOf(res, models.EntryKindFlight)
	require.Len(t, flights, 2)
	outbound, ok := flights[0].Metadata["segments"].([]models.FlightSegment)
	require.True(t, ok)
	require.Len(t, outbound, 1)
	assert.Equal(t, flight.FallbackSegmentMinutes, outbound[0].DurationMinutes)
	routes.AssertExpectations(t)
}

func TestSchedule_ConnectingRouteHasTwoLegs(t *testing.T) {
	routes := new(MockRouteEstimator)
	routes.On("EstimateRoute", mock.Anything, "Nairobi", "Guangzhou").Return(flight.RouteEstimate{
		ConnectionCities: []string{"Dubai"},
		DurationMinutes:  720,
	}, nil)
	s := newScheduler(routes)

	res, err := s.Schedule(context.Background(), itinerary.Request{
		Plan: surgeryPlan(10),
		Intent: models.BookingIntent{
			OriginCity:      "Nairobi",
			DestinationCity: "Guangzhou",
			TravelDate:      "2026-11-02",
		},
	})
	require.NoError(t, err)

	flights := entriesOf(res, models.EntryKindFlight)
	require.Len(t, flights, 2)
	outbound := flights[0].Metadata["segments"].([]models.FlightSegment)
	inbound := flights[1].Metadata["segments"].([]models.FlightSegment)
	require.Len(t, outbound, 2)
	require.Len(t, inbound, 2)
	assert.Equal(t, "Dubai", outbound[0].To)
	assert.Equal(t, "Dubai", inbound[0].To)
	// 720 minutes airborne plus a 90 minute layover
	assert.Equal(t, utc("2026-11-02T21:30:00Z"), res.Arrival)
}

func TestSchedule_AppointmentHint(t *testing.T) {
	s := newScheduler(nil)
	intent := models.BookingIntent{
		OriginCity:      "Shanghai",
		DestinationCity: "Shanghai",
		TravelDate:      "2026-11-02",
	}

	t.Run("inside window", func(t *testing.T) {
		in := intent
		in.AppointmentDate = "2026-11-05"
		res, err := s.Schedule(context.Background(), itinerary.Request{Plan: surgeryPlan(8), Intent: in})
		require.NoError(t, err)

		medical := entriesOf(res, models.EntryKindMedical)
		require.Len(t, medical, 1)
		assert.Equal(t, utc("2026-11-05T10:00:00Z"), medical[0].StartTime)
		assert.Empty(t, res.Warnings)
	})

	t.Run("outside window", func(t *testing.T) {
		in := intent
		in.AppointmentDate = "2026-11-20"
		res, err := s.Schedule(context.Background(), itinerary.Request{Plan: surgeryPlan(8), Intent: in})
		require.NoError(t, err)

		medical := entriesOf(res, models.EntryKindMedical)
		require.Len(t, medical, 1)
		assert.Equal(t, utc("2026-11-03T10:00:00Z"), medical[0].StartTime)
		assert.Equal(t, []string{itinerary.WarnAppointmentHintIgnored}, warningCodes(res))
	})
}

func TestSchedule_Attractions(t *testing.T) {
	s := newScheduler(nil)
	intent := models.BookingIntent{
		OriginCity:      "Xi'an",
		DestinationCity: "Xi'an",
		TravelDate:      "2026-11-02",
	}

	t.Run("placed back to back", func(t *testing.T) {
		in := intent
		in.Attractions = []models.Attraction{
			{ID: "a1", Name: "Terracotta Army", Price: 120, DurationMinutes: 120},
			{ID: "a2", Name: "City Wall", Price: 54},
		}
		res, err := s.Schedule(context.Background(), itinerary.Request{Plan: surgeryPlan(8), Intent: in})
		require.NoError(t, err)

		got := entriesOf(res, models.EntryKindAttraction)
		require.Len(t, got, 2)
		assert.Equal(t, utc("2026-11-04T14:00:00Z"), got[0].StartTime)
		assert.Equal(t, utc("2026-11-04T16:00:00Z"), got[0].EndTime)
		assert.Equal(t, utc("2026-11-04T16:30:00Z"), got[1].StartTime)
		assert.Equal(t, utc("2026-11-04T19:30:00Z"), got[1].EndTime)
		assert.Equal(t, 120.0, got[0].Price)
		assert.Equal(t, "Xi'an", got[1].Location)
		assert.Empty(t, res.Warnings)
	})

	t.Run("no room omits all", func(t *testing.T) {
		in := intent
		in.ReturnDate = "2026-11-04"
		in.Attractions = []models.Attraction{{ID: "a1", Name: "Terracotta Army", Price: 120}}
		res, err := s.Schedule(context.Background(), itinerary.Request{Plan: surgeryPlan(8), Intent: in})
		require.NoError(t, err)

		assert.Empty(t, entriesOf(res, models.EntryKindAttraction))
		assert.Equal(t, []string{itinerary.WarnAttractionsOmitted}, warningCodes(res))
	})

	t.Run("oversized attraction is skipped", func(t *testing.T) {
		in := intent
		in.ReturnDate = "2026-11-06"
		in.Attractions = []models.Attraction{
			{ID: "a1", Name: "Silk Road Trek", DurationMinutes: 2000},
			{ID: "a2", Name: "Muslim Quarter", DurationMinutes: 60},
		}
		res, err := s.Schedule(context.Background(), itinerary.Request{Plan: surgeryPlan(8), Intent: in})
		require.NoError(t, err)

		got := entriesOf(res, models.EntryKindAttraction)
		require.Len(t, got, 1)
		assert.Equal(t, "Muslim Quarter", got[0].Name)
		assert.Equal(t, utc("2026-11-04T14:00:00Z"), got[0].StartTime)
		assert.Equal(t, []string{itinerary.WarnAttractionOmitted}, warningCodes(res))
	})
}

func TestSchedule_InvalidDates(t *testing.T) {
	s := newScheduler(nil)

	_, err := s.Schedule(context.Background(), itinerary.Request{
		Plan:   surgeryPlan(8),
		Intent: models.BookingIntent{OriginCity: "A", DestinationCity: "A", TravelDate: "next tuesday"},
	})
	assert.Error(t, err)

	_, err = s.Schedule(context.Background(), itinerary.Request{
		Plan:   surgeryPlan(8),
		Intent: models.BookingIntent{OriginCity: "A", DestinationCity: "A", TravelDate: "2026-11-05", ReturnDate: "2026-11-01"},
	})
	assert.Error(t, err)
}

func TestSchedule_OrderingHoldsWheneverFeasible(t *testing.T) {
	cities := [][2]string{
		{"Paris", "Beijing"},
		{"Nairobi", "Guangzhou"},
		{"Shanghai", "Shanghai"},
		{"Lima", "Chengdu"},
		{"Beijing", "Shanghai"},
	}
	s := newScheduler(flight.NewStaticRouteEstimator())
	rng := rand.New(rand.NewSource(42))
	base := utc("2026-11-01T00:00:00Z")

	for i := 0; i < 300; i++ {
		pair := cities[rng.Intn(len(cities))]
		travel := base.AddDate(0, 0, rng.Intn(60)).Add(time.Duration(rng.Intn(24)) * time.Hour)
		in := models.BookingIntent{
			OriginCity:      pair[0],
			DestinationCity: pair[1],
			TravelDate:      travel.Format(time.RFC3339),
			Attractions:     []models.Attraction{{ID: "a", Name: "Museum", DurationMinutes: 30 + rng.Intn(300)}},
		}
		if rng.Intn(2) == 0 {
			in.AppointmentDate = travel.AddDate(0, 0, rng.Intn(12)).Format("2006-01-02")
		}

		res, err := s.Schedule(context.Background(), itinerary.Request{Plan: surgeryPlan(2 + rng.Intn(14)), Intent: in})
		require.NoError(t, err, "case %d", i)

		name := fmt.Sprintf("case %d %v", i, in)

		hotel := entriesOf(res, models.EntryKindHotel)
		require.Len(t, hotel, 1, name)
		assert.False(t, hotel[0].StartTime.Before(res.Arrival), name)
		inboundDeparture := res.Return
		for _, f := range entriesOf(res, models.EntryKindFlight) {
			if f.Metadata["direction"] == "inbound" {
				inboundDeparture = f.StartTime
			}
		}
		assert.False(t, hotel[0].EndTime.After(inboundDeparture), name)

		if !res.AppointmentFeasible {
			assert.Contains(t, warningCodes(res), itinerary.WarnAppointmentInfeasible, name)
			continue
		}

		boundary := res.Return.Add(-24 * time.Hour)
		medical := entriesOf(res, models.EntryKindMedical)
		require.Len(t, medical, 1, name)
		assert.False(t, medical[0].StartTime.Before(res.Arrival.Add(20*time.Hour)), name)
		assert.False(t, medical[0].StartTime.After(boundary), name)

		for _, f := range entriesOf(res, models.EntryKindFlight) {
			if f.Metadata["direction"] == "outbound" {
				assert.False(t, f.EndTime.After(medical[0].StartTime), name)
			}
		}
		for _, a := range entriesOf(res, models.EntryKindAttraction) {
			assert.False(t, a.StartTime.Before(medical[0].EndTime), name)
			assert.False(t, a.EndTime.After(boundary), name)
		}
		assert.GreaterOrEqual(t, hotel[0].Metadata["nights"], 1, name)
	}
}
