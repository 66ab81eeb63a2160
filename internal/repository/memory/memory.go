// Package memory provides in-process repository implementations. They back
// the test suite and the single-instance fallback for the token revocation
// store when Redis is not configured.
package memory

import (
	"context"
	"sync"

	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository"
)

type AccountRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*model.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byID: make(map[int64]*model.Account)}
}

func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = r.nextID
	clone := *account
	r.byID[account.ID] = &clone
	return nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byID {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byID {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

type PatientRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*model.Patient
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{byID: make(map[int64]*model.Patient)}
}

func (r *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	patient.ID = r.nextID
	clone := *patient
	r.byID[patient.ID] = &clone
	return nil
}

func (r *PatientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *PatientRepository) List(ctx context.Context, skip, limit int) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*model.Patient{}
	for id := int64(1); id <= r.nextID && len(out) < skip+limit; id++ {
		if p, ok := r.byID[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	if skip >= len(out) {
		return []*model.Patient{}, nil
	}
	return out[skip:], nil
}

func (r *PatientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *PatientRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type ConsultationRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*model.Consultation
}

func NewConsultationRepository() *ConsultationRepository {
	return &ConsultationRepository{byID: make(map[int64]*model.Consultation)}
}

func (r *ConsultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	consultation.ID = r.nextID
	clone := *consultation
	r.byID[consultation.ID] = &clone
	return nil
}

func (r *ConsultationRepository) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *ConsultationRepository) List(ctx context.Context, skip, limit int) ([]*model.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*model.Consultation{}
	for id := int64(1); id <= r.nextID && len(out) < skip+limit; id++ {
		if c, ok := r.byID[id]; ok {
			clone := *c
			out = append(out, &clone)
		}
	}
	if skip >= len(out) {
		return []*model.Consultation{}, nil
	}
	return out[skip:], nil
}

func (r *ConsultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[consultation.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *consultation
	r.byID[consultation.ID] = &clone
	return nil
}

func (r *ConsultationRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
