package models

import "strings"

// Attraction is a sightseeing item the traveler may add at itinerary time.
type Attraction struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Location        string  `bson:"location,omitempty" json:"location,omitempty"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
}

// BookingIntent captures what a traveler asked for. Dates are "2006-01-02" or RFC3339.
type BookingIntent struct {
	UserID          string `json:"userId"`
	OriginCity      string `json:"originCity"`
	DestinationCity string `json:"destinationCity"`
	TravelDate      string `json:"travelDate"`
	ReturnDate      string `json:"returnDate,omitempty"`      // optional; defaults to the plan duration
	AppointmentDate string `json:"appointmentDate,omitempty"` // optional hint
	Travelers       int    `json:"travelers"`

	TreatmentCategory       string   `json:"treatmentCategory,omitempty"`
	ConsultationDirection   string   `json:"consultationDirection,omitempty"`
	ExaminationItems        []string `json:"examinationItems,omitempty"`
	SurgeryType             string   `json:"surgeryType,omitempty"`
	TreatmentDirection      string   `json:"treatmentDirection,omitempty"`
	RehabilitationDirection string   `json:"rehabilitationDirection,omitempty"`

	HospitalID  string       `json:"hospitalId,omitempty"`
	DoctorID    string       `json:"doctorId,omitempty"`
	Budget      float64      `json:"budget,omitempty"`
	Currency    string       `json:"currency,omitempty"`
	Attractions []Attraction `json:"attractions,omitempty"`
}

// HasMedicalSelection is true only when a hospital or doctor was actually chosen.
func (b BookingIntent) HasMedicalSelection() bool {
	return strings.TrimSpace(b.HospitalID) != "" || strings.TrimSpace(b.DoctorID) != ""
}

// SameCity reports whether the trip needs no flights.
func (b BookingIntent) SameCity() bool {
	return strings.EqualFold(strings.TrimSpace(b.OriginCity), strings.TrimSpace(b.DestinationCity))
}

// TravelerCount never returns less than one.
func (b BookingIntent) TravelerCount() int {
	if b.Travelers < 1 {
		return 1
	}
	return b.Travelers
}

// TicketTotal sums the prices of the selected attractions.
func (b BookingIntent) TicketTotal() float64 {
	total := 0.0
	for _, a := range b.Attractions {
		if a.Price > 0 {
			total += a.Price
		}
	}
	return total
}
