package flight

import (
	"context"
	"math"
	"strings"
)

var classMultipliers = map[string]float64{
	ClassEconomy:  1,
	ClassBusiness: 3,
	ClassFirst:    5,
}

// StaticFareEstimator prices fare classes from the built-in route table.
// Figures are per traveler; travelers is accepted for interface parity only.
type StaticFareEstimator struct{}

func NewStaticFareEstimator() *StaticFareEstimator {
	return &StaticFareEstimator{}
}

func (e *StaticFareEstimator) EstimateFare(ctx context.Context, origin, destination, fareClass string, travelers int) (FareEstimate, error) {
	if err := ctx.Err(); err != nil {
		return FareEstimate{}, err
	}
	if cityKey(origin) == cityKey(destination) {
		return FareEstimate{Currency: "USD"}, nil
	}

	info, found := lookupRoute(origin, destination)
	mult, ok := classMultipliers[strings.ToLower(strings.TrimSpace(fareClass))]
	if !ok {
		mult = 1
	}
	typical := info.typicalUSD * mult
	return FareEstimate{
		MinPrice:     roundTo5(typical * 0.8),
		MaxPrice:     roundTo5(typical * 1.3),
		TypicalPrice: roundTo5(typical),
		Currency:     "USD",
		Estimated:    !found,
	}, nil
}

func roundTo5(v float64) float64 {
	return math.Round(v/5) * 5
}
