package pricing_test

import (
	"testing"

	"gochinamed/models"
	"gochinamed/services/pricing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategory_Priority(t *testing.T) {
	full := models.BookingIntent{
		ExaminationItems:        []string{"MRI"},
		SurgeryType:             "knee replacement",
		TreatmentDirection:      "oncology",
		RehabilitationDirection: "stroke",
		ConsultationDirection:   "cardiology",
	}

	tests := []struct {
		name   string
		mutate func(*models.BookingIntent)
		want   models.TreatmentCategory
	}{
		{"explicit wins", func(b *models.BookingIntent) { b.TreatmentCategory = "Therapy" }, models.CategoryTherapy},
		{"general is not explicit", func(b *models.BookingIntent) { b.TreatmentCategory = "general" }, models.CategoryExamination},
		{"examination items", func(b *models.BookingIntent) {}, models.CategoryExamination},
		{"surgery type", func(b *models.BookingIntent) { b.ExaminationItems = nil }, models.CategorySurgery},
		{"blank examination items ignored", func(b *models.BookingIntent) { b.ExaminationItems = []string{" "} }, models.CategorySurgery},
		{"treatment direction", func(b *models.BookingIntent) {
			b.ExaminationItems = nil
			b.SurgeryType = ""
		}, models.CategoryTherapy},
		{"rehabilitation direction", func(b *models.BookingIntent) {
			b.ExaminationItems = nil
			b.SurgeryType = ""
			b.TreatmentDirection = ""
		}, models.CategoryRehabilitation},
		{"consultation direction", func(b *models.BookingIntent) {
			b.ExaminationItems = nil
			b.SurgeryType = ""
			b.TreatmentDirection = ""
			b.RehabilitationDirection = ""
		}, models.CategoryConsultation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := full
			tt.mutate(&intent)
			assert.Equal(t, tt.want, pricing.ResolveCategory(intent))
		})
	}
}

func TestResolveCategory_DefaultsToConsultation(t *testing.T) {
	assert.Equal(t, models.CategoryConsultation, pricing.ResolveCategory(models.BookingIntent{}))
}

func TestResolveCategory_UnknownExplicitIsKept(t *testing.T) {
	got := pricing.ResolveCategory(models.BookingIntent{TreatmentCategory: "Dental"})
	assert.Equal(t, models.TreatmentCategory("dental"), got)
	assert.False(t, got.Known())
}
