package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/harborhr/hr-backend-go/internal/domain/auth"
	"github.com/harborhr/hr-backend-go/internal/domain/user"
	"github.com/harborhr/hr-backend-go/internal/pkg/jwt"
	"github.com/harborhr/hr-backend-go/internal/pkg/oauth"
)

type Service struct {
	user.Repository
	refreshTokens auth.RefreshTokenRepository
	jwt           jwt.Service
	google        oauth.GoogleService
}

func NewService(userRepository user.Repository, refreshTokens auth.RefreshTokenRepository, jwtService jwt.Service, google oauth.GoogleService) *Service {
	return &Service{
		Repository:    userRepository,
		refreshTokens: refreshTokens,
		jwt:           jwtService,
		google:        google,
	}
}

func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	u, err := s.Repository.GetByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueSession(ctx, u)
}

// LoginWithGoogle exchanges the OAuth authorization code, resolves the
// Google account to a linked user and issues a session.
func (s *Service) LoginWithGoogle(ctx context.Context, code string) (auth.SessionResponse, error) {
	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return auth.SessionResponse{}, auth.ErrOAuthExchangeFailed
	}

	profile, err := s.google.FetchProfile(ctx, token)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}

	u, err := s.Repository.GetByGoogleID(ctx, profile.GoogleID)
	if errors.Is(err, user.ErrUserNotFound) {
		// First Google sign-in: link by verified email.
		if !profile.VerifiedEmail {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		u, err = s.Repository.GetByEmail(ctx, profile.Email)
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		if err != nil {
			return auth.SessionResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}
		u.GoogleID = &profile.GoogleID
		if err := s.Repository.Update(ctx, u); err != nil {
			return auth.SessionResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	} else if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by google id: %w", err)
	}

	return s.issueSession(ctx, u)
}

// Refresh rotates the refresh token: the presented token is revoked and a
// new pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.SessionResponse, error) {
	userID, ok, err := s.refreshTokens.IsValid(ctx, refreshToken)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to validate refresh token: %w", err)
	}
	if !ok {
		return auth.SessionResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := s.Repository.GetByID(ctx, userID)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueSession(ctx, u)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *Service) issueSession(ctx context.Context, u user.User) (auth.SessionResponse, error) {
	accessToken, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokens.Store(ctx, u.ID, refreshToken, refreshExp); err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.SessionResponse{
		UserID:     u.ID,
		Email:      u.Email,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
		TokenPair: auth.TokenPair{
			AccessToken:      accessToken,
			AccessExpiresAt:  accessExp,
			RefreshToken:     refreshToken,
			RefreshExpiresAt: refreshExp,
		},
	}, nil
}
