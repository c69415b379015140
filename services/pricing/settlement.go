package pricing

import "gochinamed/models"

// ComponentRates holds one number per fee-bearing component.
type ComponentRates struct {
	Medical float64 `mapstructure:"medical" json:"medical"`
	Flight  float64 `mapstructure:"flight" json:"flight"`
	Hotel   float64 `mapstructure:"hotel" json:"hotel"`
}

// ServiceFeePolicy is the intermediary's charge: a rate per component with a floor.
// WaiveZeroComponents drops the floor for components the order does not include.
type ServiceFeePolicy struct {
	Rates               ComponentRates
	MinFees             ComponentRates
	WaiveZeroComponents bool
}

// DefaultServiceFeePolicy is used when configuration leaves the policy empty.
func DefaultServiceFeePolicy() ServiceFeePolicy {
	return ServiceFeePolicy{
		Rates:   ComponentRates{Medical: 0.06, Flight: 0.03, Hotel: 0.05},
		MinFees: ComponentRates{Medical: 100, Flight: 50, Hotel: 50},
	}
}

// SettleInput carries everything payment-time pricing needs.
type SettleInput struct {
	Plan                models.DraftPlan // client state, never trusted
	Category            models.TreatmentCategory
	HasMedicalSelection bool
	Travelers           int
	TicketTotal         float64 // selected attractions
	Policy              ServiceFeePolicy
}

// Settlement is the payment-time price of an order.
type Settlement struct {
	Plan        models.PlanOption          `json:"plan"`
	MedicalFee  float64                    `json:"medicalFee"`
	HotelFee    float64                    `json:"hotelFee"`
	FlightFee   float64                    `json:"flightFee"`
	TicketFee   float64                    `json:"ticketFee"`
	Subtotal    float64                    `json:"subtotal"`
	ServiceFees models.ServiceFeeBreakdown `json:"serviceFees"`
	ServiceFee  float64                    `json:"serviceFee"`
	TotalAmount float64                    `json:"totalAmount"`
	Currency    string                     `json:"currency"`
}

// Settle re-normalizes the plan with the booking's category and computes the subtotal
// and service fees. Each component's service fee is the larger of fee*rate and the
// component's minimum, also when the fee itself is zero unless the policy waives it.
func Settle(in SettleInput) Settlement {
	plan := Normalize(in.Plan, in.Category, in.HasMedicalSelection, in.Travelers)

	s := Settlement{
		Plan:       plan,
		MedicalFee: plan.MedicalFee,
		HotelFee:   plan.HotelFee,
		FlightFee:  plan.FlightFee,
		TicketFee:  Round2(nonNegative(in.TicketTotal)),
		Currency:   plan.Currency,
	}
	s.Subtotal = FromCents(Cents(s.MedicalFee) + Cents(s.HotelFee) + Cents(s.FlightFee) + Cents(s.TicketFee))

	s.ServiceFees = models.ServiceFeeBreakdown{
		Medical: in.Policy.componentFee(s.MedicalFee, in.Policy.Rates.Medical, in.Policy.MinFees.Medical),
		Flight:  in.Policy.componentFee(s.FlightFee, in.Policy.Rates.Flight, in.Policy.MinFees.Flight),
		Hotel:   in.Policy.componentFee(s.HotelFee, in.Policy.Rates.Hotel, in.Policy.MinFees.Hotel),
	}
	s.ServiceFee = FromCents(Cents(s.ServiceFees.Medical) + Cents(s.ServiceFees.Flight) + Cents(s.ServiceFees.Hotel))
	s.TotalAmount = FromCents(Cents(s.Subtotal) + Cents(s.ServiceFee))
	return s
}

func (p ServiceFeePolicy) componentFee(fee, rate, minFee float64) float64 {
	if fee <= 0 && p.WaiveZeroComponents {
		return 0
	}
	charge := nonNegative(fee) * nonNegative(rate)
	if floor := nonNegative(minFee); charge < floor {
		charge = floor
	}
	return Round2(charge)
}
