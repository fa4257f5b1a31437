package memory

import (
	"context"
	"sync"
	"time"
)

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]refreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[string]refreshToken)}
}

func (r *RefreshTokenRepository) Store(_ context.Context, userID, token string, expiresAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = refreshToken{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r *RefreshTokenRepository) IsValid(_ context.Context, token string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[token]
	if !ok || t.revoked || time.Now().After(t.expiresAt) {
		return "", false, nil
	}
	return t.userID, true, nil
}

func (r *RefreshTokenRepository) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tokens[token]; ok {
		t.revoked = true
		r.tokens[token] = t
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, t := range r.tokens {
		if t.userID == userID {
			t.revoked = true
			r.tokens[token] = t
		}
	}
	return nil
}
