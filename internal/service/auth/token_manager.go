package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"grocerystore/internal/domain"
	tokenrepo "grocerystore/internal/repository/token"
)

type tokenManager struct {
	repo tokenrepo.Repository
}

func newTokenManager(repo tokenrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

func (m *tokenManager) IssueUser(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	return m.issue(ctx, tokenrepo.Token{
		UserID:    &userID,
		Kind:      tokenrepo.KindAccess,
		ExpiresAt: time.Now().Add(ttl),
	})
}

func (m *tokenManager) IssueAdmin(ctx context.Context, adminID string, ttl time.Duration) (string, error) {
	return m.issue(ctx, tokenrepo.Token{
		AdminID:   &adminID,
		Kind:      tokenrepo.KindAdminAccess,
		ExpiresAt: time.Now().Add(ttl),
	})
}

func (m *tokenManager) issue(ctx context.Context, t tokenrepo.Token) (string, error) {
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		t.Token = token
		err = m.repo.Create(ctx, t)
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// ValidateUser resolves a shopper access token to a user id.
func (m *tokenManager) ValidateUser(ctx context.Context, token string) (string, bool) {
	meta, ok := m.validate(ctx, token, tokenrepo.KindAccess)
	if !ok || meta.UserID == nil {
		return "", false
	}
	return *meta.UserID, true
}

// ValidateAdmin resolves an admin access token to an admin id.
func (m *tokenManager) ValidateAdmin(ctx context.Context, token string) (string, bool) {
	meta, ok := m.validate(ctx, token, tokenrepo.KindAdminAccess)
	if !ok || meta.AdminID == nil {
		return "", false
	}
	return *meta.AdminID, true
}

func (m *tokenManager) validate(ctx context.Context, token, kind string) (*tokenrepo.Token, bool) {
	meta, err := m.repo.Get(ctx, token)
	if err != nil {
		return nil, false
	}
	if meta.Kind != kind {
		return nil, false
	}
	if time.Now().After(meta.ExpiresAt) {
		_ = m.repo.Delete(ctx, token)
		return nil, false
	}
	return meta, true
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
