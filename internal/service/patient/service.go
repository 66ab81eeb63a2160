package patient

import (
	"context"
	"fmt"

	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
	"github.com/medtrack/consult-api/pkg/validator"
)

const defaultPageSize = 10

type Service struct {
	repo     repository.PatientRepository
	validate *validator.Validator
}

func NewService(repo repository.PatientRepository, validate *validator.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	fields := s.validate.Struct(req)

	if req.Email != "" {
		exists, err := s.repo.ExistsEmail(ctx, req.Email)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if exists {
			fields = append(fields, apperrors.FieldError{Field: "email", Reason: "is already registered"})
		}
	}

	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	patient := &model.Patient{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Age:              req.Age,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		MedicalHistory:   req.MedicalHistory,
		EmergencyContact: req.EmergencyContact,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create patient: %w", err))
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*model.Patient, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	patients, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list patients: %w", err))
	}
	return patients, nil
}
