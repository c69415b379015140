package models

import "time"

// PaymentRequest is handed to the payment simulator.
type PaymentRequest struct {
	UserID      string
	Amount      float64
	Method      string // "card", "cash" or "bank_transfer"
	Currency    string
	Idempotency string
	Description string
}

// Invoice is what the payment simulator returns.
type Invoice struct {
	InvoiceID string
	UserID    string
	Amount    float64
	Currency  string
	Status    string
	Method    string
	PaymentID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentDetails is the client's payment choice.
type PaymentDetails struct {
	Method string `json:"method"`
}

// DocumentDetails is the traveler's passport data, captured at payment time.
type DocumentDetails struct {
	PassportNumber string `json:"passportNumber"`
	Country        string `json:"country"`
}

// ConfirmRequest is the payment-time request. Plan is client state and is re-priced.
type ConfirmRequest struct {
	UserID         string           `json:"userId"`
	Intent         BookingIntent    `json:"intent"`
	Plan           DraftPlan        `json:"plan"`
	Payment        PaymentDetails   `json:"payment"`
	Document       *DocumentDetails `json:"document,omitempty"`
	IdempotencyKey string           `json:"idempotencyKey,omitempty"`
}

// ConfirmResult is returned once the order exists.
type ConfirmResult struct {
	OrderID             string            `json:"orderId"`
	Reused              bool              `json:"reused"`
	Status              string            `json:"status"`
	Subtotal            float64           `json:"subtotal"`
	ServiceFee          float64           `json:"serviceFee"`
	TotalAmount         float64           `json:"totalAmount"`
	Currency            string            `json:"currency"`
	AppointmentFeasible bool              `json:"appointmentFeasible"`
	Warnings            []ScheduleWarning `json:"warnings,omitempty"`
}
