package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"gochinamed/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGuardAmount(t *testing.T) {
	assert.Equal(t, 40120.35, GuardAmount(34800.1, 5320.2, 0.05))
}

func TestDuplicateGuard_Window(t *testing.T) {
	created := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	orders := &memoryOrders{orders: []models.Order{
		{ID: "old", UserID: "u1", AmountKey: 49580, CreatedAt: created.Add(-time.Minute)},
		{ID: "new", UserID: "u1", AmountKey: 49580, CreatedAt: created},
		{ID: "other-user", UserID: "u2", AmountKey: 49580, CreatedAt: created},
	}}
	guard := NewDuplicateGuard(orders, 5*time.Minute, zap.NewNop())

	tests := []struct {
		name   string
		userID string
		amount float64
		at     time.Time
		want   string
	}{
		{"inside window reuses newest", "u1", 49580, created.Add(4 * time.Minute), "new"},
		{"rounding noise still matches", "u1", 49580.001, created.Add(time.Minute), "new"},
		{"outside window proceeds", "u1", 49580, created.Add(6 * time.Minute), ""},
		{"different amount proceeds", "u1", 49581, created.Add(time.Minute), ""},
		{"different user", "u3", 49580, created.Add(time.Minute), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard.now = func() time.Time { return tt.at }
			decision := guard.Check(context.Background(), tt.userID, tt.amount, "")
			if tt.want == "" {
				assert.False(t, decision.Reuse())
				return
			}
			assert.True(t, decision.Reuse())
			assert.Equal(t, tt.want, decision.Existing.ID)
			assert.Equal(t, "amount_window", decision.Reason)
		})
	}
}

func TestDuplicateGuard_IdempotencyKey(t *testing.T) {
	orders := &memoryOrders{orders: []models.Order{
		{ID: "keyed", UserID: "u1", IdempotencyKey: "k-1", AmountKey: 10, CreatedAt: time.Now().Add(-time.Hour)},
	}}
	guard := NewDuplicateGuard(orders, 0, nil)

	decision := guard.Check(context.Background(), "u1", 999, " k-1 ")

	assert.True(t, decision.Reuse())
	assert.Equal(t, "keyed", decision.Existing.ID)
	assert.Equal(t, "idempotency_key", decision.Reason)
}

func TestDuplicateGuard_LookupFailureProceeds(t *testing.T) {
	orders := &memoryOrders{err: errors.New("connection reset")}
	guard := NewDuplicateGuard(orders, 0, nil)

	decision := guard.Check(context.Background(), "u1", 100, "k-1")

	assert.False(t, decision.Reuse())
}
