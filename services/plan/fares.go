package plan

import (
	"context"
	"time"

	"gochinamed/services/flight"

	"go.uber.org/zap"
)

// FareQuotes are per-traveler USD estimates for the three fare classes.
type FareQuotes struct {
	Economy  flight.FareEstimate
	Business flight.FareEstimate
	First    flight.FareEstimate
}

// ForClass returns the quote for a fare class.
func (q FareQuotes) ForClass(class string) flight.FareEstimate {
	switch class {
	case flight.ClassBusiness:
		return q.Business
	case flight.ClassFirst:
		return q.First
	}
	return q.Economy
}

// genericFare is used when the estimator errors or times out.
var genericFare = map[string]float64{
	flight.ClassEconomy:  900,
	flight.ClassBusiness: 2700,
	flight.ClassFirst:    4500,
}

// QuoteFares asks the estimator for each fare class under its own timeout.
// Same-city trips get zero quotes without a call.
func QuoteFares(ctx context.Context, estimator flight.FareEstimator, origin, destination string, travelers int, timeout time.Duration, logger *zap.Logger) FareQuotes {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sameCity(origin, destination) {
		return FareQuotes{}
	}
	if timeout <= 0 {
		timeout = defaultCollaboratorTimeout
	}

	quote := func(class string) flight.FareEstimate {
		if estimator != nil {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			est, err := estimator.EstimateFare(cctx, origin, destination, class, travelers)
			if err == nil && est.TypicalPrice > 0 {
				return est
			}
			logger.Warn("fare estimate unavailable, using generic fare",
				zap.String("class", class), zap.String("origin", origin),
				zap.String("destination", destination), zap.Error(err))
		}
		price := genericFare[class]
		return flight.FareEstimate{MinPrice: price * 0.8, MaxPrice: price * 1.3, TypicalPrice: price, Currency: "USD", Estimated: true}
	}

	return FareQuotes{
		Economy:  quote(flight.ClassEconomy),
		Business: quote(flight.ClassBusiness),
		First:    quote(flight.ClassFirst),
	}
}
