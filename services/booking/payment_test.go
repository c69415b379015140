package booking

import (
	"context"
	"strings"
	"testing"

	"gochinamed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPayment(t *testing.T) {
	h := NewPaymentHandler(nil)

	tests := []struct {
		method     string
		wantStatus string
		wantPaid   bool
	}{
		{MethodCard, models.OrderStatusPaid, true},
		{MethodCash, models.OrderStatusPending, false},
		{MethodBankTransfer, models.OrderStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			inv, err := h.ProcessPayment(context.Background(), models.PaymentRequest{
				UserID: "u1", Amount: 120.5, Method: tt.method, Currency: "CNY",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, inv.Status)
			assert.NotEmpty(t, inv.InvoiceID)
			assert.Equal(t, tt.wantPaid, strings.HasPrefix(inv.PaymentID, "pi_"))
		})
	}
}

func TestProcessPayment_Rejects(t *testing.T) {
	h := NewPaymentHandler(nil)

	_, err := h.ProcessPayment(context.Background(), models.PaymentRequest{UserID: "u1", Amount: 0, Method: MethodCard})
	assert.Error(t, err)
	_, err = h.ProcessPayment(context.Background(), models.PaymentRequest{Amount: 10, Method: MethodCard})
	assert.Error(t, err)
	_, err = h.ProcessPayment(context.Background(), models.PaymentRequest{UserID: "u1", Amount: 10, Method: "cheque"})
	assert.Error(t, err)
}
