package models

import "time"

// Order statuses.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"

	AppointmentStatusPending     = "pending"
	AppointmentStatusConfirmed   = "confirmed"
	AppointmentStatusNotRequired = "not_required"

	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
)

// ServiceFeeBreakdown holds per-component service fees.
type ServiceFeeBreakdown struct {
	Medical float64 `bson:"medical" json:"medical"`
	Flight  float64 `bson:"flight" json:"flight"`
	Hotel   float64 `bson:"hotel" json:"hotel"`
}

// Order is written once at payment time. Only the two confirmation statuses change afterwards.
type Order struct {
	ID             string `bson:"id" json:"id"`
	UserID         string `bson:"userId" json:"userId"`
	PlanID         string `bson:"planId" json:"planId"`
	PlanName       string `bson:"planName" json:"planName"`
	IdempotencyKey string `bson:"idempotencyKey,omitempty" json:"idempotencyKey,omitempty"`

	Plan        PlanOption          `bson:"plan" json:"plan"`           // normalized at payment time
	TicketFee   float64             `bson:"ticketFee" json:"ticketFee"` // selected attractions
	Subtotal    float64             `bson:"subtotal" json:"subtotal"`
	ServiceFees ServiceFeeBreakdown `bson:"serviceFees" json:"serviceFees"`
	ServiceFee  float64             `bson:"serviceFee" json:"serviceFee"`
	TotalAmount float64             `bson:"totalAmount" json:"totalAmount"`
	Currency    string              `bson:"currency" json:"currency"`
	AmountKey   float64             `bson:"amountKey" json:"-"` // medical+hotel+flight rounded, used by the duplicate guard

	Status                   string       `bson:"status" json:"status"`
	Payment                  OrderPayment `bson:"payment" json:"payment"`
	DoctorAppointmentStatus  string       `bson:"doctorAppointmentStatus" json:"doctorAppointmentStatus"`
	DoctorAppointmentRef     string       `bson:"doctorAppointmentRef,omitempty" json:"doctorAppointmentRef,omitempty"`
	ServiceReservationStatus string       `bson:"serviceReservationStatus" json:"serviceReservationStatus"`

	TreatmentCategory TreatmentCategory `bson:"treatmentCategory" json:"treatmentCategory"`
	OriginCity        string            `bson:"originCity" json:"originCity"`
	DestinationCity   string            `bson:"destinationCity" json:"destinationCity"`
	DoctorID          string            `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	HospitalID        string            `bson:"hospitalId,omitempty" json:"hospitalId,omitempty"`
	Document          *DocumentSnapshot `bson:"document,omitempty" json:"document,omitempty"`

	AppointmentFeasible bool              `bson:"appointmentFeasible" json:"appointmentFeasible"`
	ScheduleWarnings    []ScheduleWarning `bson:"scheduleWarnings,omitempty" json:"scheduleWarnings,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OrderPayment references the simulated payment.
type OrderPayment struct {
	Method    string `bson:"method" json:"method"`
	InvoiceID string `bson:"invoiceId" json:"invoiceId"`
	PaymentID string `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status    string `bson:"status" json:"status"`
}

// DocumentSnapshot is the masked travel document stored on the order.
type DocumentSnapshot struct {
	Country        string `bson:"country" json:"country"`
	PassportMasked string `bson:"passportMasked" json:"passportMasked"`
}
