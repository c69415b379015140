package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gochinamed/models"
	"gochinamed/services/pricing"
)

// ErrMalformedAdvice means the advisor reply could not be used.
var ErrMalformedAdvice = errors.New("malformed advisor response")

// BuildPrompt describes the trip and the fixed numbers of each tier.
func BuildPrompt(in Input, drafts []models.DraftPlan) string {
	intent := in.Intent
	rule := pricing.RuleFor(in.Category)

	var tierLines strings.Builder
	for _, d := range drafts {
		fmt.Fprintf(&tierLines, "- %s: hotelFee=%.2f flightFee=%.2f carFee=%.2f reservationFee=%.2f surgeryFee<=%.2f medicineFee<=%.2f nursingFee<=%.2f nutritionFee<=%.2f hotelStars=%d flightClass=%q\n",
			d.Tier, d.HotelFee.Value, d.FlightFee.Value, d.CarFee.Value, d.ReservationFee.Value,
			d.SurgeryFee.Value, d.MedicineFee.Value, d.NursingFee.Value, d.NutritionFee.Value,
			d.HotelStars.Value, d.FlightClass)
	}

	var selections []string
	if intent.ConsultationDirection != "" {
		selections = append(selections, "consultation: "+intent.ConsultationDirection)
	}
	if len(intent.ExaminationItems) > 0 {
		selections = append(selections, "examinations: "+strings.Join(intent.ExaminationItems, ", "))
	}
	if intent.SurgeryType != "" {
		selections = append(selections, "surgery: "+intent.SurgeryType)
	}
	if intent.TreatmentDirection != "" {
		selections = append(selections, "treatment: "+intent.TreatmentDirection)
	}
	if intent.RehabilitationDirection != "" {
		selections = append(selections, "rehabilitation: "+intent.RehabilitationDirection)
	}
	if len(selections) == 0 {
		selections = append(selections, "none specified")
	}

	budget := "not given"
	if in.Budget > 0 {
		budget = fmt.Sprintf("%.0f %s", in.Budget, currencyOf(drafts))
	}

	return fmt.Sprintf(`You are a medical travel planner. Write three travel packages for this patient.

Trip:
- From %s to %s, departing %s, %d traveler(s)
- Treatment category: %s
- Selections: %s
- Hospital: %s, doctor: %s
- Budget: %s
- Medical guidance: %s

Each package must keep these numbers (currency %s). Medical fees may be lower but never higher:
%s
Return strictly a JSON object with this structure and exactly three plans in the order budget, standard, premium:
{
  "plans": [
    {"tier": "budget", "name": "Package name", "highlights": ["short point", "..."], "hotelName": "Hotel", "medicalPlan": "One paragraph describing the care", "surgeryFee": 0, "medicineFee": 0, "nursingFee": 0, "nutritionFee": 0},
    ...
  ]
}

Do not include any other text or formatting in your response.
`,
		intent.OriginCity, intent.DestinationCity, intent.TravelDate, in.Travelers,
		in.Category, strings.Join(selections, "; "),
		orNone(intent.HospitalID), orNone(intent.DoctorID), budget, rule.DefaultNarrative,
		currencyOf(drafts), tierLines.String())
}

type advisorReply struct {
	Plans []models.DraftPlan `json:"plans"`
}

// ParseCandidates extracts exactly three named plan candidates from advisor text.
// It accepts {"plans": [...]} or a bare array, optionally inside a Markdown fence.
func ParseCandidates(text string) ([]models.DraftPlan, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedAdvice)
	}

	var candidates []models.DraftPlan
	if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedAdvice, err)
		}
	} else {
		var reply advisorReply
		if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedAdvice, err)
		}
		candidates = reply.Plans
	}

	if len(candidates) != 3 {
		return nil, fmt.Errorf("%w: expected 3 plans, got %d", ErrMalformedAdvice, len(candidates))
	}
	for i, c := range candidates {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("%w: plan %d has no name", ErrMalformedAdvice, i+1)
		}
	}
	return candidates, nil
}

func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

func currencyOf(drafts []models.DraftPlan) string {
	if len(drafts) > 0 && drafts[0].Currency != "" {
		return drafts[0].Currency
	}
	return pricing.DefaultCurrency
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
