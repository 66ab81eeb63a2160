package consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
	"github.com/medtrack/consult-api/pkg/validator"
)

const defaultPageSize = 10

type Service struct {
	repo     repository.ConsultationRepository
	patients repository.PatientRepository
	validate *validator.Validator
}

func NewService(
	repo repository.ConsultationRepository,
	patients repository.PatientRepository,
	validate *validator.Validator,
) *Service {
	return &Service{repo: repo, patients: patients, validate: validate}
}

// Create validates every field independently and reports all violations
// together. The patient reference is checked against the store at write
// time, not merely type-checked.
func (s *Service) Create(ctx context.Context, req *model.CreateConsultationRequest) (*model.Consultation, error) {
	fields := s.validate.Struct(req)

	if req.PatientID != 0 {
		exists, err := s.patients.Exists(ctx, req.PatientID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !exists {
			fields = append(fields, apperrors.FieldError{Field: "patient_id", Reason: "referenced patient does not exist"})
		}
	}

	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	consultation := &model.Consultation{
		PatientID:             req.PatientID,
		ReasonForConsultation: req.ReasonForConsultation,
		PreliminaryDiagnosis:  req.PreliminaryDiagnosis,
		CurrentMedication:     req.CurrentMedication,
		FirstSessionDate:      req.FirstSessionDate,
		NumberOfSessions:      req.NumberOfSessions,
		AssignedTherapist:     req.AssignedTherapist,
		Observations:          req.Observations,
	}
	if err := s.repo.Create(ctx, consultation); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create consultation: %w", err))
	}
	return consultation, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	consultation, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("consultation")
		}
		return nil, apperrors.Internal(err)
	}
	return consultation, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*model.Consultation, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	consultations, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list consultations: %w", err))
	}
	return consultations, nil
}

// Replace is a full update: every writable field is required and
// re-validated with the creation rules. The patient reference is kept.
func (s *Service) Replace(ctx context.Context, id int64, req *model.ReplaceConsultationRequest) (*model.Consultation, error) {
	consultation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields := s.validate.Struct(req); fields != nil {
		return nil, apperrors.Validation(fields)
	}

	consultation.ReasonForConsultation = req.ReasonForConsultation
	consultation.PreliminaryDiagnosis = req.PreliminaryDiagnosis
	consultation.CurrentMedication = req.CurrentMedication
	consultation.FirstSessionDate = req.FirstSessionDate
	consultation.NumberOfSessions = req.NumberOfSessions
	consultation.AssignedTherapist = req.AssignedTherapist
	consultation.Observations = req.Observations

	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update consultation: %w", err))
	}
	return consultation, nil
}

// Patch overwrites only the supplied fields; each supplied value is
// validated with the same rule it has on create, stored values are
// untouched otherwise.
func (s *Service) Patch(ctx context.Context, id int64, req *model.PatchConsultationRequest) (*model.Consultation, error) {
	consultation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields := s.validate.Struct(req); fields != nil {
		return nil, apperrors.Validation(fields)
	}

	if req.ReasonForConsultation != nil {
		consultation.ReasonForConsultation = *req.ReasonForConsultation
	}
	if req.PreliminaryDiagnosis != nil {
		consultation.PreliminaryDiagnosis = req.PreliminaryDiagnosis
	}
	if req.CurrentMedication != nil {
		consultation.CurrentMedication = req.CurrentMedication
	}
	if req.FirstSessionDate != nil {
		consultation.FirstSessionDate = *req.FirstSessionDate
	}
	if req.NumberOfSessions != nil {
		consultation.NumberOfSessions = *req.NumberOfSessions
	}
	if req.AssignedTherapist != nil {
		consultation.AssignedTherapist = *req.AssignedTherapist
	}
	if req.Observations != nil {
		consultation.Observations = req.Observations
	}

	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update consultation: %w", err))
	}
	return consultation, nil
}

// Delete is a hard delete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("consultation")
		}
		return apperrors.Internal(err)
	}
	return nil
}
