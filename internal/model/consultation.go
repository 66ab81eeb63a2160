package model

// Consultation is a psychological consultation record, foreign-keyed to a
// Patient. There is no status field; it is plain CRUD with dense field
// validation on the write paths.
type Consultation struct {
	ID                    int64   `json:"id" db:"id"`
	PatientID             int64   `json:"patient_id" db:"patient_id"`
	ReasonForConsultation string  `json:"reason_for_consultation" db:"reason_for_consultation"`
	PreliminaryDiagnosis  *string `json:"preliminary_diagnosis" db:"preliminary_diagnosis"`
	CurrentMedication     *string `json:"current_medication" db:"current_medication"`
	FirstSessionDate      Date    `json:"first_session_date" db:"first_session_date"`
	NumberOfSessions      int     `json:"number_of_sessions" db:"number_of_sessions"`
	AssignedTherapist     string  `json:"assigned_therapist" db:"assigned_therapist"`
	Observations          *string `json:"observations" db:"observations"`
}

// CreateConsultationRequest represents consultation creation parameters.
// Violations are collected per field, not fail-fast.
type CreateConsultationRequest struct {
	PatientID             int64   `json:"patient_id" validate:"required"`
	ReasonForConsultation string  `json:"reason_for_consultation" validate:"required,min=4"`
	PreliminaryDiagnosis  *string `json:"preliminary_diagnosis"`
	CurrentMedication     *string `json:"current_medication"`
	FirstSessionDate      Date    `json:"first_session_date" validate:"required,notpast"`
	NumberOfSessions      int     `json:"number_of_sessions" validate:"required,gte=1,lte=60"`
	AssignedTherapist     string  `json:"assigned_therapist" validate:"required,therapist_title"`
	Observations          *string `json:"observations"`
}

// ReplaceConsultationRequest represents a PUT full replace: every writable
// field is required. The patient reference is not writable after creation.
type ReplaceConsultationRequest struct {
	ReasonForConsultation string  `json:"reason_for_consultation" validate:"required,min=4"`
	PreliminaryDiagnosis  *string `json:"preliminary_diagnosis"`
	CurrentMedication     *string `json:"current_medication"`
	FirstSessionDate      Date    `json:"first_session_date" validate:"required,notpast"`
	NumberOfSessions      int     `json:"number_of_sessions" validate:"required,gte=1,lte=60"`
	AssignedTherapist     string  `json:"assigned_therapist" validate:"required,therapist_title"`
	Observations          *string `json:"observations"`
}

// PatchConsultationRequest represents a partial update. A nil pointer means
// the field was absent from the request and the stored value is retained;
// only supplied fields are validated.
type PatchConsultationRequest struct {
	ReasonForConsultation *string `json:"reason_for_consultation" validate:"omitempty,min=4"`
	PreliminaryDiagnosis  *string `json:"preliminary_diagnosis"`
	CurrentMedication     *string `json:"current_medication"`
	FirstSessionDate      *Date   `json:"first_session_date" validate:"omitempty,notpast"`
	NumberOfSessions      *int    `json:"number_of_sessions" validate:"omitempty,gte=1,lte=60"`
	AssignedTherapist     *string `json:"assigned_therapist" validate:"omitempty,therapist_title"`
	Observations          *string `json:"observations"`
}
