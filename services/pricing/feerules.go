package pricing

import (
	"math"

	"gochinamed/models"
)

// MedicalFees holds the four medical sub-fee components.
type MedicalFees struct {
	Surgery   float64 `json:"surgery"`
	Medicine  float64 `json:"medicine"`
	Nursing   float64 `json:"nursing"`
	Nutrition float64 `json:"nutrition"`
}

// Total sums the components.
func (m MedicalFees) Total() float64 {
	return m.Surgery + m.Medicine + m.Nursing + m.Nutrition
}

// Scale multiplies every component by factor.
func (m MedicalFees) Scale(factor float64) MedicalFees {
	return MedicalFees{
		Surgery:   m.Surgery * factor,
		Medicine:  m.Medicine * factor,
		Nursing:   m.Nursing * factor,
		Nutrition: m.Nutrition * factor,
	}
}

// FeeRule says which medical components a category may charge.
// MedicineCap of zero means uncapped.
type FeeRule struct {
	Category         models.TreatmentCategory `json:"category"`
	SurgeryAllowed   bool                     `json:"surgeryAllowed"`
	NursingAllowed   bool                     `json:"nursingAllowed"`
	NutritionAllowed bool                     `json:"nutritionAllowed"`
	MedicineCap      float64                  `json:"medicineCap"`
	Base             MedicalFees              `json:"base"` // budget-tier reference prices, CNY
	DefaultNarrative string                   `json:"defaultNarrative"`
}

// defaultRule applies to categories nobody recognises.
var defaultRule = FeeRule{
	MedicineCap:      100,
	Base:             MedicalFees{Medicine: 40},
	DefaultNarrative: "Initial assessment with a general practitioner and basic prescriptions.",
}

var feeRules = map[models.TreatmentCategory]FeeRule{
	models.CategoryConsultation: {
		Category:         models.CategoryConsultation,
		MedicineCap:      200,
		Base:             MedicalFees{Medicine: 60},
		DefaultNarrative: "Specialist consultation with a written treatment recommendation.",
	},
	models.CategoryExamination: {
		Category:         models.CategoryExamination,
		MedicineCap:      300,
		Base:             MedicalFees{Medicine: 110},
		DefaultNarrative: "Diagnostic examination package with a follow-up review of results.",
	},
	models.CategorySurgery: {
		Category:         models.CategorySurgery,
		SurgeryAllowed:   true,
		NursingAllowed:   true,
		NutritionAllowed: true,
		Base:             MedicalFees{Surgery: 30000, Medicine: 1500, Nursing: 2400, Nutrition: 900},
		DefaultNarrative: "Pre-operative assessment, the procedure, inpatient nursing and a recovery diet.",
	},
	models.CategoryTherapy: {
		Category:         models.CategoryTherapy,
		NursingAllowed:   true,
		NutritionAllowed: true,
		Base:             MedicalFees{Medicine: 1200, Nursing: 1600, Nutrition: 600},
		DefaultNarrative: "A course of therapy sessions with nursing support and nutrition guidance.",
	},
	models.CategoryRehabilitation: {
		Category:         models.CategoryRehabilitation,
		NursingAllowed:   true,
		NutritionAllowed: true,
		Base:             MedicalFees{Medicine: 800, Nursing: 2000, Nutrition: 700},
		DefaultNarrative: "Supervised rehabilitation programme with physiotherapy and diet planning.",
	},
}

// RuleFor returns the fee rule for a category. Unspecified means consultation;
// anything else unknown gets the restrictive default.
func RuleFor(category models.TreatmentCategory) FeeRule {
	if category == models.CategoryUnspecified {
		category = models.CategoryConsultation
	}
	if rule, ok := feeRules[category]; ok {
		return rule
	}
	rule := defaultRule
	rule.Category = category
	return rule
}

// Rules lists the rules of the five known categories in a fixed order.
func Rules() []FeeRule {
	categories := []models.TreatmentCategory{
		models.CategoryConsultation,
		models.CategoryExamination,
		models.CategorySurgery,
		models.CategoryTherapy,
		models.CategoryRehabilitation,
	}
	out := make([]FeeRule, 0, len(categories))
	for _, c := range categories {
		out = append(out, feeRules[c])
	}
	return out
}

// Apply enforces the rule on a set of fees: disallowed components become zero,
// negatives become zero and medicine is clamped to its cap.
func (r FeeRule) Apply(fees MedicalFees) MedicalFees {
	out := MedicalFees{
		Surgery:   nonNegative(fees.Surgery),
		Medicine:  nonNegative(fees.Medicine),
		Nursing:   nonNegative(fees.Nursing),
		Nutrition: nonNegative(fees.Nutrition),
	}
	if !r.SurgeryAllowed {
		out.Surgery = 0
	}
	if !r.NursingAllowed {
		out.Nursing = 0
	}
	if !r.NutritionAllowed {
		out.Nutrition = 0
	}
	if r.MedicineCap > 0 && out.Medicine > r.MedicineCap {
		out.Medicine = r.MedicineCap
	}
	return out
}

// Round2 rounds money to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cents converts money to whole cents.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// FromCents converts whole cents back to money.
func FromCents(c int64) float64 {
	return float64(c) / 100
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
