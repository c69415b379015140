package models

import "strings"

// TreatmentCategory gates which medical fee components may be non-zero.
type TreatmentCategory string

const (
	CategoryUnspecified    TreatmentCategory = ""
	CategoryConsultation   TreatmentCategory = "consultation"
	CategoryExamination    TreatmentCategory = "examination"
	CategorySurgery        TreatmentCategory = "surgery"
	CategoryTherapy        TreatmentCategory = "therapy"
	CategoryRehabilitation TreatmentCategory = "rehabilitation"
)

// ParseTreatmentCategory lower-cases and trims raw input. "general" and blanks mean unspecified.
func ParseTreatmentCategory(raw string) TreatmentCategory {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "general" || v == "none" {
		return CategoryUnspecified
	}
	return TreatmentCategory(v)
}

// Known reports whether c is one of the five supported categories.
func (c TreatmentCategory) Known() bool {
	switch c {
	case CategoryConsultation, CategoryExamination, CategorySurgery, CategoryTherapy, CategoryRehabilitation:
		return true
	}
	return false
}

// Plan tiers, cheapest first.
const (
	TierBudget   = "budget"
	TierStandard = "standard"
	TierPremium  = "premium"
)

// Plan sources.
const (
	PlanSourceAdvisor  = "advisor"
	PlanSourceFallback = "fallback"
	PlanSourceClient   = "client"
)

// DraftPlan is an unvalidated plan candidate. Every field is optional and
// numbers may arrive as strings. Only the normalizer turns it into a PlanOption.
type DraftPlan struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Tier string `json:"tier,omitempty"`

	HotelFee       LooseFloat `json:"hotelFee"`
	FlightFee      LooseFloat `json:"flightFee"`
	CarFee         LooseFloat `json:"carFee"`
	TicketFee      LooseFloat `json:"ticketFee"`
	ReservationFee LooseFloat `json:"reservationFee"`

	SurgeryFee   LooseFloat `json:"surgeryFee"`
	MedicineFee  LooseFloat `json:"medicineFee"`
	NursingFee   LooseFloat `json:"nursingFee"`
	NutritionFee LooseFloat `json:"nutritionFee"`

	// Never trusted; recomputed during normalization.
	MedicalFee  LooseFloat `json:"medicalFee"`
	TotalAmount LooseFloat `json:"totalAmount"`

	Currency     string   `json:"currency,omitempty"`
	DurationDays LooseInt `json:"durationDays"`
	Nights       LooseInt `json:"nights"`
	HotelName    string   `json:"hotelName,omitempty"`
	HotelStars   LooseInt `json:"hotelStars"`
	FlightClass  string   `json:"flightClass,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	DoctorID     string   `json:"doctorId,omitempty"`
	HospitalID   string   `json:"hospitalId,omitempty"`
	MedicalPlan  string   `json:"medicalPlan,omitempty"`
	Travelers    LooseInt `json:"travelers"`
	Source       string   `json:"source,omitempty"`
}

// PlanOption is a fully priced travel package. Build it with pricing.Normalize.
type PlanOption struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Tier string `bson:"tier" json:"tier"`

	HotelFee       float64 `bson:"hotelFee" json:"hotelFee"`
	FlightFee      float64 `bson:"flightFee" json:"flightFee"`
	CarFee         float64 `bson:"carFee" json:"carFee"`
	TicketFee      float64 `bson:"ticketFee" json:"ticketFee"`
	ReservationFee float64 `bson:"reservationFee" json:"reservationFee"`

	SurgeryFee   float64 `bson:"surgeryFee" json:"surgeryFee"`
	MedicineFee  float64 `bson:"medicineFee" json:"medicineFee"`
	NursingFee   float64 `bson:"nursingFee" json:"nursingFee"`
	NutritionFee float64 `bson:"nutritionFee" json:"nutritionFee"`

	MedicalFee  float64 `bson:"medicalFee" json:"medicalFee"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
	Currency    string  `bson:"currency" json:"currency"`

	DurationDays int      `bson:"durationDays" json:"durationDays"`
	Nights       int      `bson:"nights" json:"nights"`
	HotelName    string   `bson:"hotelName,omitempty" json:"hotelName,omitempty"`
	HotelStars   int      `bson:"hotelStars" json:"hotelStars"`
	FlightClass  string   `bson:"flightClass,omitempty" json:"flightClass,omitempty"`
	Highlights   []string `bson:"highlights,omitempty" json:"highlights,omitempty"`
	DoctorID     string   `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	HospitalID   string   `bson:"hospitalId,omitempty" json:"hospitalId,omitempty"`
	MedicalPlan  string   `bson:"medicalPlan,omitempty" json:"medicalPlan,omitempty"`
	Travelers    int      `bson:"travelers" json:"travelers"`
	Source       string   `bson:"source,omitempty" json:"source,omitempty"`
}

// Draft turns a plan back into a draft, e.g. when a client echoes it at payment time.
func (p PlanOption) Draft() DraftPlan {
	return DraftPlan{
		ID:             p.ID,
		Name:           p.Name,
		Tier:           p.Tier,
		HotelFee:       Float(p.HotelFee),
		FlightFee:      Float(p.FlightFee),
		CarFee:         Float(p.CarFee),
		TicketFee:      Float(p.TicketFee),
		ReservationFee: Float(p.ReservationFee),
		SurgeryFee:     Float(p.SurgeryFee),
		MedicineFee:    Float(p.MedicineFee),
		NursingFee:     Float(p.NursingFee),
		NutritionFee:   Float(p.NutritionFee),
		MedicalFee:     Float(p.MedicalFee),
		TotalAmount:    Float(p.TotalAmount),
		Currency:       p.Currency,
		DurationDays:   Int(p.DurationDays),
		Nights:         Int(p.Nights),
		HotelName:      p.HotelName,
		HotelStars:     Int(p.HotelStars),
		FlightClass:    p.FlightClass,
		Highlights:     append([]string(nil), p.Highlights...),
		DoctorID:       p.DoctorID,
		HospitalID:     p.HospitalID,
		MedicalPlan:    p.MedicalPlan,
		Travelers:      Int(p.Travelers),
		Source:         p.Source,
	}
}
