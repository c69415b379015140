package plan

import (
	"gochinamed/models"
	"gochinamed/services/flight"
)

const (
	// StayNights is the fixed hotel stay every tier is priced on.
	StayNights = 7
	// LocalGroundFee is the budget-tier car fee for same-city trips, CNY.
	LocalGroundFee = 300
)

// Tier holds the cost levers of one plan variant.
type Tier struct {
	Name           string
	Multiplier     float64 // medical fees
	NightlyRate    float64 // per traveler, CNY
	ReservationFee float64
	CarMultiplier  float64 // same-city ground transport
	HotelStars     int
	FlightClass    string
	HotelSuffix    string
}

var tiers = []Tier{
	{
		Name:           models.TierBudget,
		Multiplier:     1.0,
		NightlyRate:    380,
		ReservationFee: 100,
		CarMultiplier:  1.0,
		HotelStars:     3,
		FlightClass:    flight.ClassEconomy,
		HotelSuffix:    "Comfort Inn",
	},
	{
		Name:           models.TierStandard,
		Multiplier:     1.5,
		NightlyRate:    720,
		ReservationFee: 200,
		CarMultiplier:  1.5,
		HotelStars:     4,
		FlightClass:    flight.ClassBusiness,
		HotelSuffix:    "Business Hotel",
	},
	{
		Name:           models.TierPremium,
		Multiplier:     2.5,
		NightlyRate:    1600,
		ReservationFee: 500,
		CarMultiplier:  2.25,
		HotelStars:     5,
		FlightClass:    flight.ClassFirst,
		HotelSuffix:    "Grand Palace Hotel",
	},
}

// Tiers returns the three tiers, cheapest first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
