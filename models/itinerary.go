package models

import "time"

// Itinerary entry kinds.
const (
	EntryKindFlight     = "flight"
	EntryKindHotel      = "hotel"
	EntryKindMedical    = "medical"
	EntryKindAttraction = "attraction"
)

// Itinerary entry statuses.
const (
	EntryStatusPending   = "pending"
	EntryStatusConfirmed = "confirmed"
)

// ItineraryEntry is one dated component of a trip.
type ItineraryEntry struct {
	ID          string                 `bson:"id" json:"id"`
	OrderID     string                 `bson:"orderId" json:"orderId"`
	Kind        string                 `bson:"kind" json:"kind"`
	Name        string                 `bson:"name" json:"name"`
	Description string                 `bson:"description,omitempty" json:"description,omitempty"`
	StartTime   time.Time              `bson:"startTime" json:"startTime"`
	EndTime     time.Time              `bson:"endTime" json:"endTime"`
	Location    string                 `bson:"location,omitempty" json:"location,omitempty"`
	Price       float64                `bson:"price" json:"price"`
	Status      string                 `bson:"status" json:"status"`
	ProviderRef string                 `bson:"providerRef,omitempty" json:"providerRef,omitempty"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// FlightSegment is one synthesized leg of a flight entry.
type FlightSegment struct {
	FlightNumber    string    `bson:"flightNumber" json:"flightNumber"`
	From            string    `bson:"from" json:"from"`
	To              string    `bson:"to" json:"to"`
	Departure       time.Time `bson:"departure" json:"departure"`
	Arrival         time.Time `bson:"arrival" json:"arrival"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
}

// ScheduleWarning flags a best-effort placement made by the scheduler.
type ScheduleWarning struct {
	Code    string `bson:"code" json:"code"`
	Message string `bson:"message" json:"message"`
}
