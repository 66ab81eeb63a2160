package repository

import (
	"context"
	"errors"
	"time"

	"github.com/medtrack/consult-api/internal/model"
)

// ErrNotFound is returned by repositories when the requested row does not
// exist. Services translate it into their own error taxonomy.
var ErrNotFound = errors.New("not found")

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context, skip, limit int) ([]*model.Patient, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
}

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *model.Consultation) error
	Get(ctx context.Context, id int64) (*model.Consultation, error)
	List(ctx context.Context, skip, limit int) ([]*model.Consultation, error)
	Update(ctx context.Context, consultation *model.Consultation) error
	Delete(ctx context.Context, id int64) error
}

// TokenStore remembers revoked tokens until their natural expiry.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
