package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medtrack/consult-api/config"
	"github.com/medtrack/consult-api/internal/email"
	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository/memory"
	pkgauth "github.com/medtrack/consult-api/pkg/auth"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
	"github.com/medtrack/consult-api/pkg/security"
	"github.com/medtrack/consult-api/pkg/validator"
)

func newTestService(expiry time.Duration) *Service {
	return NewService(
		memory.NewAccountRepository(),
		memory.NewTokenStore(),
		pkgauth.NewJWTService("test-secret", expiry),
		security.NewBcryptHasher(bcrypt.MinCost),
		email.New(config.SMTPConfig{}),
		validator.New(),
	)
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "pw123",
		Role:     model.RolePractitioner,
	}
}

func TestRegisterLoginVerify(t *testing.T) {
	svc := newTestService(30 * time.Minute)
	ctx := context.Background()

	account, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.Equal(t, "maria", account.Username)
	assert.True(t, account.IsActive)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "pw123", account.PasswordHash)

	token, err := svc.Login(ctx, "maria", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, "maria", token.Username)

	username, err := svc.Verify(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "maria", username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(30 * time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Username already exists", appErr.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(30 * time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "other"
	_, err = svc.Register(ctx, dup)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Email is already registered", appErr.Message)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newTestService(30 * time.Minute)

	req := registerRequest()
	req.Role = "superuser"
	_, err := svc.Register(context.Background(), req)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestLoginFailuresCollapse(t *testing.T) {
	svc := newTestService(30 * time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	// Unknown username and wrong password produce the identical error.
	_, errUnknown := svc.Login(ctx, "nobody", "pw123")
	_, errWrongPw := svc.Login(ctx, "maria", "wrong")

	for _, err := range []error{errUnknown, errWrongPw} {
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	token, err := svc.Login(ctx, "maria", "pw123")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token.AccessToken)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
	assert.Equal(t, "Could not validate credentials", appErr.Message)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService(30 * time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	token, err := svc.Login(ctx, "maria", "pw123")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token.AccessToken))

	_, err = svc.Verify(ctx, token.AccessToken)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestCurrentAccount(t *testing.T) {
	svc := newTestService(30 * time.Minute)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	token, err := svc.Login(ctx, "maria", "pw123")
	require.NoError(t, err)

	account, err := svc.CurrentAccount(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
	assert.Equal(t, "maria", account.Username)
}
