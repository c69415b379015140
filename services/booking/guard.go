package booking

import (
	"context"
	"strings"
	"time"

	"gochinamed/database/repository"
	"gochinamed/models"
	"gochinamed/services/pricing"

	"go.uber.org/zap"
)

// DefaultDuplicateWindow is how far back a payment with the same amount counts as a resubmission.
const DefaultDuplicateWindow = 5 * time.Minute

// GuardDecision tells the caller whether to reuse an existing order.
type GuardDecision struct {
	Existing *models.Order
	Reason   string // "idempotency_key" or "amount_window"
}

// Reuse reports whether an existing order should be returned.
func (d GuardDecision) Reuse() bool { return d.Existing != nil }

// DuplicateGuard suppresses double submissions. It is advisory: two requests
// racing past the lookup can still both create orders.
type DuplicateGuard struct {
	orders repository.OrderRepository
	window time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewDuplicateGuard(orders repository.OrderRepository, window time.Duration, logger *zap.Logger) *DuplicateGuard {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuplicateGuard{orders: orders, window: window, logger: logger, now: time.Now}
}

// GuardAmount is the figure duplicates are compared on.
func GuardAmount(medicalFee, hotelFee, flightFee float64) float64 {
	return pricing.Round2(medicalFee + hotelFee + flightFee)
}

// Check looks for an order to reuse. Lookup failures are logged and treated as
// "no duplicate".
func (g *DuplicateGuard) Check(ctx context.Context, userID string, amount float64, idempotencyKey string) GuardDecision {
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		existing, err := g.orders.GetByIdempotencyKey(ctx, userID, key)
		if err != nil {
			g.logger.Warn("idempotency lookup failed", zap.String("userId", userID), zap.Error(err))
		} else if existing != nil {
			return GuardDecision{Existing: existing, Reason: "idempotency_key"}
		}
	}

	since := g.now().Add(-g.window)
	existing, err := g.orders.FindRecentByAmount(ctx, userID, pricing.Round2(amount), since)
	if err != nil {
		g.logger.Warn("duplicate lookup failed", zap.String("userId", userID), zap.Error(err))
		return GuardDecision{}
	}
	if existing != nil {
		return GuardDecision{Existing: existing, Reason: "amount_window"}
	}
	return GuardDecision{}
}
