package flight

import (
	"context"
)

// Fare classes.
const (
	ClassEconomy  = "economy"
	ClassBusiness = "business"
	ClassFirst    = "first"
)

// FareEstimate is a per-traveler price band in USD.
type FareEstimate struct {
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
	TypicalPrice float64 `json:"typicalPrice"`
	Currency     string  `json:"currency"`
	Estimated    bool    `json:"estimated"` // true when the route was not in the table
}

// RouteEstimate describes how a city pair is usually flown.
type RouteEstimate struct {
	HasDirectFlight  bool     `json:"hasDirectFlight"`
	ConnectionCities []string `json:"connectionCities,omitempty"`
	TypicalPriceUSD  float64  `json:"typicalPriceUsd"`
	DurationMinutes  int      `json:"durationMinutes"` // airborne time, excluding layovers
}

// FareEstimator prices a fare class on a route. Unknown routes get a generic
// estimate rather than an error.
type FareEstimator interface {
	EstimateFare(ctx context.Context, origin, destination, fareClass string, travelers int) (FareEstimate, error)
}

// RouteEstimator describes the route between two cities.
type RouteEstimator interface {
	EstimateRoute(ctx context.Context, origin, destination string) (RouteEstimate, error)
}
