package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository"
)

type consultationRepository struct {
	db *sqlx.DB
}

func NewConsultationRepository(db *sqlx.DB) repository.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	query := `
		INSERT INTO consultations (
			patient_id, reason_for_consultation, preliminary_diagnosis,
			current_medication, first_session_date, number_of_sessions,
			assigned_therapist, observations
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		consultation.PatientID,
		consultation.ReasonForConsultation,
		consultation.PreliminaryDiagnosis,
		consultation.CurrentMedication,
		consultation.FirstSessionDate,
		consultation.NumberOfSessions,
		consultation.AssignedTherapist,
		consultation.Observations,
	).Scan(&consultation.ID)
	if err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	query := `SELECT * FROM consultations WHERE id = $1`
	var consultation model.Consultation
	err := r.db.GetContext(ctx, &consultation, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return &consultation, nil
}

func (r *consultationRepository) List(ctx context.Context, skip, limit int) ([]*model.Consultation, error) {
	query := `SELECT * FROM consultations ORDER BY id OFFSET $1 LIMIT $2`
	consultations := []*model.Consultation{}
	if err := r.db.SelectContext(ctx, &consultations, query, skip, limit); err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, nil
}

func (r *consultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	query := `
		UPDATE consultations SET
			reason_for_consultation = $1,
			preliminary_diagnosis = $2,
			current_medication = $3,
			first_session_date = $4,
			number_of_sessions = $5,
			assigned_therapist = $6,
			observations = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		consultation.ReasonForConsultation,
		consultation.PreliminaryDiagnosis,
		consultation.CurrentMedication,
		consultation.FirstSessionDate,
		consultation.NumberOfSessions,
		consultation.AssignedTherapist,
		consultation.Observations,
		consultation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *consultationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM consultations WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete consultation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete consultation: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
