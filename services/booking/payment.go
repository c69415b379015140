package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gochinamed/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Payment methods.
const (
	MethodCard         = "card"
	MethodCash         = "cash"
	MethodBankTransfer = "bank_transfer"
)

// --- Interfaces ---
type PaymentHandler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// --- PaymentHandler Implementation ---
// UnifiedPaymentHandler simulates settlement: cards are paid at once, offline
// methods stay pending until reconciled elsewhere.
type UnifiedPaymentHandler struct {
	logger *zap.Logger
	now    func() time.Time
}

// --- NewPaymentHandler Constructor ---
func NewPaymentHandler(logger *zap.Logger) *UnifiedPaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnifiedPaymentHandler{logger: logger, now: time.Now}
}

// --- ProcessPayment Entry Point ---
func (h *UnifiedPaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validatePaymentRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := h.now()
	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch req.Method {
	case MethodCard:
		inv.PaymentID = "pi_" + uuid.New().String()
		inv.Status = models.OrderStatusPaid
		h.logger.Info("Card payment successful", zap.String("invoice", inv.InvoiceID), zap.Float64("amount", inv.Amount))
	case MethodCash, MethodBankTransfer:
		h.logger.Info("Offline payment recorded", zap.String("invoice", inv.InvoiceID), zap.String("method", req.Method))
	}
	return inv, nil
}

// --- Validator ---
func validatePaymentRequest(req models.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.UserID == "" {
		return errors.New("missing user ID")
	}
	if !validPaymentMethod(req.Method) {
		return fmt.Errorf("unsupported payment method: %s", req.Method)
	}
	return nil
}

func validPaymentMethod(method string) bool {
	switch method {
	case MethodCard, MethodCash, MethodBankTransfer:
		return true
	}
	return false
}
