package model

// Patient is a clinic patient record. Patients are created by any
// authenticated account and are read-only afterwards.
type Patient struct {
	ID               int64   `json:"id" db:"id"`
	FirstName        string  `json:"first_name" db:"first_name"`
	LastName         string  `json:"last_name" db:"last_name"`
	Age              int     `json:"age" db:"age"`
	PhoneNumber      string  `json:"phone_number" db:"phone_number"`
	Email            string  `json:"email" db:"email"`
	MedicalHistory   *string `json:"medical_history" db:"medical_history"`
	EmergencyContact *string `json:"emergency_contact" db:"emergency_contact"`
}

// CreatePatientRequest represents patient creation parameters.
type CreatePatientRequest struct {
	FirstName        string  `json:"first_name" validate:"required"`
	LastName         string  `json:"last_name" validate:"required"`
	Age              int     `json:"age" validate:"required,gte=0,lte=150"`
	PhoneNumber      string  `json:"phone_number" validate:"required"`
	Email            string  `json:"email" validate:"required,email"`
	MedicalHistory   *string `json:"medical_history"`
	EmergencyContact *string `json:"emergency_contact"`
}
