package models

// ConfirmationPayload is carried by the background confirmation tasks.
type ConfirmationPayload struct {
	OrderID    string `json:"orderId"`
	UserID     string `json:"userId"`
	DoctorID   string `json:"doctorId,omitempty"`
	HospitalID string `json:"hospitalId,omitempty"`
}
