package pricing

import (
	"strings"

	"gochinamed/models"
)

// ResolveCategory picks the effective treatment category for a booking.
// Priority: explicit category, examination items, surgery type, treatment
// direction, rehabilitation direction, consultation direction, then consultation.
func ResolveCategory(intent models.BookingIntent) models.TreatmentCategory {
	if c := models.ParseTreatmentCategory(intent.TreatmentCategory); c != models.CategoryUnspecified {
		return c
	}
	if hasAny(intent.ExaminationItems) {
		return models.CategoryExamination
	}
	if present(intent.SurgeryType) {
		return models.CategorySurgery
	}
	if present(intent.TreatmentDirection) {
		return models.CategoryTherapy
	}
	if present(intent.RehabilitationDirection) {
		return models.CategoryRehabilitation
	}
	if present(intent.ConsultationDirection) {
		return models.CategoryConsultation
	}
	return models.CategoryConsultation
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func hasAny(items []string) bool {
	for _, item := range items {
		if present(item) {
			return true
		}
	}
	return false
}
