package models

import "time"

// User holds the travel profile fields this service maintains.
type User struct {
	ID          string            `bson:"id" json:"id"`
	Preferences TravelPreferences `bson:"preferences" json:"preferences"`
	Document    *TravelDocument   `bson:"document,omitempty" json:"document,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// TravelPreferences is refreshed after every plan request.
type TravelPreferences struct {
	OriginCity      string  `bson:"originCity,omitempty" json:"originCity,omitempty"`
	DestinationCity string  `bson:"destinationCity,omitempty" json:"destinationCity,omitempty"`
	Budget          float64 `bson:"budget,omitempty" json:"budget,omitempty"`
}

// TravelDocument stores the passport number encrypted.
type TravelDocument struct {
	Country           string    `bson:"country" json:"country"`
	PassportEncrypted string    `bson:"passportEncrypted" json:"-"`
	PassportMasked    string    `bson:"passportMasked" json:"passportMasked"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}
