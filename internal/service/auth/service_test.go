package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harborhr/hr-backend-go/internal/domain/auth"
	"github.com/harborhr/hr-backend-go/internal/domain/user"
	"github.com/harborhr/hr-backend-go/internal/pkg/jwt"
	"github.com/harborhr/hr-backend-go/internal/repository/memory"
)

const testPassword = "password123"

func newTestService(t *testing.T) (*Service, *memory.UserRepository, *memory.RefreshTokenRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	tokens := memory.NewRefreshTokenRepository()
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	return NewService(users, tokens, jwtService, nil), users, tokens
}

func createTestUser(t *testing.T, users *memory.UserRepository, email string, role user.Role) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	employeeID := uuid.New().String()
	u, err := users.Create(context.Background(), user.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeID:   &employeeID,
	})
	require.NoError(t, err)
	return u
}

func TestLoginIssuesSession(t *testing.T) {
	svc, users, _ := newTestService(t)
	u := createTestUser(t, users, "jane@example.com", user.RoleEmployee)

	session, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, u.ID, session.UserID)
	assert.Equal(t, string(user.RoleEmployee), session.Role)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, users, _ := newTestService(t)
	createTestUser(t, users, "jane@example.com", user.RoleEmployee)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown email yields the same error, not a not-found leak.
	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, users, _ := newTestService(t)
	createTestUser(t, users, "jane@example.com", user.RoleEmployee)
	ctx := context.Background()

	session, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: testPassword})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked by rotation.
	_, err = svc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// The new one still works.
	_, err = svc.Refresh(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, users, _ := newTestService(t)
	createTestUser(t, users, "jane@example.com", user.RoleEmployee)
	ctx := context.Background()

	session, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.RefreshToken))

	_, err = svc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
