package auth

import "context"

type Service interface {
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)
	// LoginWithGoogle exchanges an OAuth authorization code for a session.
	// The Google account must already be linked to a user.
	LoginWithGoogle(ctx context.Context, code string) (SessionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (SessionResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// RefreshTokenRepository - interface for refresh_tokens table. Tokens are
// rotated on refresh and revoked on logout.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID, token string, expiresAt int64) error
	IsValid(ctx context.Context, token string) (userID string, ok bool, err error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
