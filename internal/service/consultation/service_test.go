package consultation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository/memory"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
	"github.com/medtrack/consult-api/pkg/validator"
)

func newTestService(t *testing.T) (*Service, int64) {
	t.Helper()

	patients := memory.NewPatientRepository()
	patient := &model.Patient{
		FirstName:   "Ana",
		LastName:    "Gomez",
		Age:         34,
		PhoneNumber: "+34 600 000 000",
		Email:       "ana@example.com",
	}
	require.NoError(t, patients.Create(context.Background(), patient))

	svc := NewService(memory.NewConsultationRepository(), patients, validator.New())
	return svc, patient.ID
}

func createRequest(patientID int64) *model.CreateConsultationRequest {
	return &model.CreateConsultationRequest{
		PatientID:             patientID,
		ReasonForConsultation: "Recurring anxiety episodes",
		FirstSessionDate:      model.NewDate(time.Now().AddDate(0, 0, 7)),
		NumberOfSessions:      10,
		AssignedTherapist:     "Dra. Marta Lopez",
	}
}

func requireValidation(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	require.Equal(t, apperrors.ErrValidation, appErr.Code)
	return appErr
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc, patientID := newTestService(t)
	ctx := context.Background()

	req := createRequest(patientID)
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, patientID, fetched.PatientID)
	assert.Equal(t, req.ReasonForConsultation, fetched.ReasonForConsultation)
	assert.Equal(t, req.FirstSessionDate.String(), fetched.FirstSessionDate.String())
	assert.Equal(t, req.NumberOfSessions, fetched.NumberOfSessions)
	assert.Equal(t, req.AssignedTherapist, fetched.AssignedTherapist)
	assert.Nil(t, fetched.PreliminaryDiagnosis)
}

func TestCreateUnknownPatient(t *testing.T) {
	svc, _ := newTestService(t)

	req := createRequest(999)
	_, err := svc.Create(context.Background(), req)

	appErr := requireValidation(t, err)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "patient_id", appErr.Fields[0].Field)
}

func TestCreateCollectsAllViolations(t *testing.T) {
	svc, _ := newTestService(t)

	req := &model.CreateConsultationRequest{
		PatientID:             999,
		ReasonForConsultation: "abc",
		FirstSessionDate:      model.NewDate(time.Now().AddDate(0, 0, -1)),
		NumberOfSessions:      61,
		AssignedTherapist:     "Juan Perez",
	}
	_, err := svc.Create(context.Background(), req)

	appErr := requireValidation(t, err)
	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}
	assert.Contains(t, names, "reason_for_consultation")
	assert.Contains(t, names, "first_session_date")
	assert.Contains(t, names, "number_of_sessions")
	assert.Contains(t, names, "assigned_therapist")
	assert.Contains(t, names, "patient_id")
}

func TestGetMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 42)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestReplace(t *testing.T) {
	svc, patientID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest(patientID))
	require.NoError(t, err)

	diagnosis := "generalized anxiety"
	updated, err := svc.Replace(ctx, created.ID, &model.ReplaceConsultationRequest{
		ReasonForConsultation: "Follow-up after intake",
		PreliminaryDiagnosis:  &diagnosis,
		FirstSessionDate:      model.NewDate(time.Now().AddDate(0, 1, 0)),
		NumberOfSessions:      20,
		AssignedTherapist:     "Dr. Juan Perez",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, patientID, updated.PatientID)
	assert.Equal(t, "Follow-up after intake", updated.ReasonForConsultation)
	assert.Equal(t, 20, updated.NumberOfSessions)
	require.NotNil(t, updated.PreliminaryDiagnosis)
	assert.Equal(t, diagnosis, *updated.PreliminaryDiagnosis)
}

func TestReplaceRequiresAllFields(t *testing.T) {
	svc, patientID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest(patientID))
	require.NoError(t, err)

	// Missing everything but the reason.
	_, err = svc.Replace(ctx, created.ID, &model.ReplaceConsultationRequest{
		ReasonForConsultation: "Follow-up after intake",
	})
	appErr := requireValidation(t, err)
	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}
	assert.Contains(t, names, "first_session_date")
	assert.Contains(t, names, "number_of_sessions")
	assert.Contains(t, names, "assigned_therapist")
}

func TestPatchChangesOnlySuppliedFields(t *testing.T) {
	svc, patientID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest(patientID))
	require.NoError(t, err)

	sessions := 25
	updated, err := svc.Patch(ctx, created.ID, &model.PatchConsultationRequest{
		NumberOfSessions: &sessions,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.NumberOfSessions)
	assert.Equal(t, created.ReasonForConsultation, updated.ReasonForConsultation)
	assert.Equal(t, created.FirstSessionDate.String(), updated.FirstSessionDate.String())
	assert.Equal(t, created.AssignedTherapist, updated.AssignedTherapist)
}

func TestPatchValidatesSuppliedFields(t *testing.T) {
	svc, patientID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest(patientID))
	require.NoError(t, err)

	bad := "abc"
	_, err = svc.Patch(ctx, created.ID, &model.PatchConsultationRequest{
		ReasonForConsultation: &bad,
	})
	appErr := requireValidation(t, err)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "reason_for_consultation", appErr.Fields[0].Field)

	// Stored record is untouched after the rejected patch.
	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ReasonForConsultation, fetched.ReasonForConsultation)
}

func TestDeleteThenGet(t *testing.T) {
	svc, patientID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest(patientID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)

	// Deleting again keeps reporting not found.
	err = svc.Delete(ctx, created.ID)
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
