package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medtrack/consult-api/internal/email"
	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository"
	pkgauth "github.com/medtrack/consult-api/pkg/auth"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
	"github.com/medtrack/consult-api/pkg/security"
	"github.com/medtrack/consult-api/pkg/validator"
)

// Messages on the wire. Login failures never reveal whether the username
// exists; protected-route failures never reveal why the token was rejected.
const (
	msgUsernameTaken      = "Username already exists"
	msgEmailTaken         = "Email is already registered"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidToken       = "Could not validate credentials"
)

type Service struct {
	accounts repository.AccountRepository
	tokens   repository.TokenStore
	jwtSvc   pkgauth.TokenService
	hasher   security.PasswordHasher
	emailSvc email.Service
	validate *validator.Validator
}

func NewService(
	accounts repository.AccountRepository,
	tokens repository.TokenStore,
	jwtSvc pkgauth.TokenService,
	hasher security.PasswordHasher,
	emailSvc email.Service,
	validate *validator.Validator,
) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		emailSvc: emailSvc,
		validate: validate,
	}
}

// Register creates a new account. Username uniqueness is checked before
// email uniqueness; both duplicates are conflicts.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	if fields := s.validate.Struct(req); fields != nil {
		return nil, apperrors.Validation(fields)
	}

	if _, err := s.accounts.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.Conflict(msgUsernameTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict(msgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	account := &model.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create account: %w", err))
	}

	// Best-effort, registration must not fail on a mail error.
	if err := s.emailSvc.SendWelcome(account.Email, account.Username); err != nil {
		log.Warn().Err(err).Str("username", account.Username).Msg("failed to send welcome email")
	}

	return account, nil
}

// Login verifies the credentials and issues a signed, time-limited token
// with the username as subject.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.jwtSvc.Generate(account.Username)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    account.Username,
	}, nil
}

// Verify checks signature, expiry and revocation, returning the embedded
// username. Every failure collapses into the same Unauthorized error.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	claims, err := s.jwtSvc.Verify(token)
	if err != nil {
		return "", apperrors.Unauthorized(msgInvalidToken)
	}

	revoked, err := s.tokens.IsRevoked(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("failed to check token revocation")
		return "", apperrors.Unauthorized(msgInvalidToken)
	}
	if revoked {
		return "", apperrors.Unauthorized(msgInvalidToken)
	}

	return claims.Subject, nil
}

// CurrentAccount resolves the token to the account it was issued for.
func (s *Service) CurrentAccount(ctx context.Context, token string) (*model.Account, error) {
	username, err := s.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidToken)
		}
		return nil, apperrors.Internal(err)
	}
	return account, nil
}

// Logout revokes the token for the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.Verify(token)
	if err != nil {
		return apperrors.Unauthorized(msgInvalidToken)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.tokens.Revoke(ctx, token, ttl); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to revoke token: %w", err))
	}
	return nil
}
