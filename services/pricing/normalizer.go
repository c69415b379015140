package pricing

import (
	"strings"

	"gochinamed/models"

	"github.com/google/uuid"
)

const (
	DefaultCurrency     = "CNY"
	DefaultDurationDays = 8
	DefaultNights       = 7
)

// Normalize is the only constructor of PlanOption. Every medical sub-fee is re-derived
// from the category rule and the selection flag, ticketFee is zeroed and both totals
// are recomputed. Normalizing an already normalized plan returns it unchanged.
func Normalize(draft models.DraftPlan, category models.TreatmentCategory, hasMedicalSelection bool, travelers int) models.PlanOption {
	medical := MedicalFees{}
	if hasMedicalSelection {
		medical = RuleFor(category).Apply(MedicalFees{
			Surgery:   draft.SurgeryFee.Or(0),
			Medicine:  draft.MedicineFee.Or(0),
			Nursing:   draft.NursingFee.Or(0),
			Nutrition: draft.NutritionFee.Or(0),
		})
	}
	medical = MedicalFees{
		Surgery:   Round2(medical.Surgery),
		Medicine:  Round2(medical.Medicine),
		Nursing:   Round2(medical.Nursing),
		Nutrition: Round2(medical.Nutrition),
	}

	tier := strings.ToLower(strings.TrimSpace(draft.Tier))
	plan := models.PlanOption{
		ID:             strings.TrimSpace(draft.ID),
		Name:           strings.TrimSpace(draft.Name),
		Tier:           tier,
		HotelFee:       money(draft.HotelFee),
		FlightFee:      money(draft.FlightFee),
		CarFee:         money(draft.CarFee),
		TicketFee:      0, // sightseeing is only added at itinerary time
		ReservationFee: money(draft.ReservationFee),
		SurgeryFee:     medical.Surgery,
		MedicineFee:    medical.Medicine,
		NursingFee:     medical.Nursing,
		NutritionFee:   medical.Nutrition,
		Currency:       strings.ToUpper(strings.TrimSpace(draft.Currency)),
		HotelName:      strings.TrimSpace(draft.HotelName),
		FlightClass:    strings.ToLower(strings.TrimSpace(draft.FlightClass)),
		Highlights:     cleanHighlights(draft.Highlights),
		DoctorID:       strings.TrimSpace(draft.DoctorID),
		HospitalID:     strings.TrimSpace(draft.HospitalID),
		MedicalPlan:    strings.TrimSpace(draft.MedicalPlan),
		Source:         strings.TrimSpace(draft.Source),
	}

	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.Name == "" {
		plan.Name = defaultPlanName(tier)
	}
	if plan.Currency == "" {
		plan.Currency = DefaultCurrency
	}

	plan.DurationDays = draft.DurationDays.Or(0)
	if plan.DurationDays < 1 {
		plan.DurationDays = DefaultDurationDays
	}
	plan.Nights = draft.Nights.Or(0)
	if plan.Nights < 1 {
		plan.Nights = DefaultNights
	}
	plan.HotelStars = clampStars(draft.HotelStars, tier)

	plan.Travelers = travelers
	if plan.Travelers < 1 {
		plan.Travelers = draft.Travelers.Or(1)
	}
	if plan.Travelers < 1 {
		plan.Travelers = 1
	}

	// both totals are summed in cents so they match their parts exactly
	medicalCents := Cents(medical.Surgery) + Cents(medical.Medicine) + Cents(medical.Nursing) + Cents(medical.Nutrition)
	plan.MedicalFee = FromCents(medicalCents)
	plan.TotalAmount = FromCents(Cents(plan.HotelFee) + Cents(plan.FlightFee) + Cents(plan.CarFee) +
		Cents(plan.TicketFee) + Cents(plan.ReservationFee) + medicalCents)
	return plan
}

func money(v models.LooseFloat) float64 {
	return Round2(nonNegative(v.Or(0)))
}

func defaultPlanName(tier string) string {
	switch tier {
	case models.TierBudget:
		return "Budget Plan"
	case models.TierStandard:
		return "Standard Plan"
	case models.TierPremium:
		return "Premium Plan"
	}
	return "Care Plan"
}

func clampStars(stars models.LooseInt, tier string) int {
	if !stars.Set {
		switch tier {
		case models.TierStandard:
			return 4
		case models.TierPremium:
			return 5
		}
		return 3
	}
	if stars.Value < 1 {
		return 1
	}
	if stars.Value > 5 {
		return 5
	}
	return stars.Value
}

func cleanHighlights(in []string) []string {
	var out []string
	for _, h := range in {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
