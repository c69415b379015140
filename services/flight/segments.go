package flight

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"gochinamed/models"
)

const (
	// FallbackSegmentMinutes is used when no route information is available.
	FallbackSegmentMinutes = 120
	layoverMinutes         = 90
)

var carrierCodes = []string{"CA", "MU", "CZ", "HU", "3U", "ZH"}

// SynthesizeSegments builds a plausible direct or one-connection leg sequence
// departing at departure. Only the first connection city is used.
func SynthesizeSegments(route RouteEstimate, origin, destination string, departure time.Time) []models.FlightSegment {
	total := route.DurationMinutes
	if total <= 0 {
		total = FallbackSegmentMinutes
	}
	if route.HasDirectFlight || len(route.ConnectionCities) == 0 {
		return []models.FlightSegment{newSegment(origin, destination, departure, total)}
	}

	via := route.ConnectionCities[0]
	first := total / 2
	second := total - first
	leg1 := newSegment(origin, via, departure, first)
	leg2 := newSegment(via, destination, leg1.Arrival.Add(layoverMinutes*time.Minute), second)
	return []models.FlightSegment{leg1, leg2}
}

// FallbackSegments is the single 120-minute leg used when route estimation fails.
func FallbackSegments(origin, destination string, departure time.Time) []models.FlightSegment {
	return []models.FlightSegment{newSegment(origin, destination, departure, FallbackSegmentMinutes)}
}

// ReverseRoute flips a route for the return direction.
func ReverseRoute(route RouteEstimate) RouteEstimate {
	out := route
	if n := len(route.ConnectionCities); n > 0 {
		out.ConnectionCities = make([]string, n)
		for i, c := range route.ConnectionCities {
			out.ConnectionCities[n-1-i] = c
		}
	}
	return out
}

func newSegment(from, to string, departure time.Time, minutes int) models.FlightSegment {
	return models.FlightSegment{
		FlightNumber:    flightNumber(from, to),
		From:            from,
		To:              to,
		Departure:       departure,
		Arrival:         departure.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
	}
}

// flightNumber is stable for a city pair so repeated schedules look the same.
func flightNumber(from, to string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(from) + "|" + strings.ToLower(to)))
	sum := h.Sum32()
	return fmt.Sprintf("%s%d", carrierCodes[sum%uint32(len(carrierCodes))], 100+sum%900)
}
