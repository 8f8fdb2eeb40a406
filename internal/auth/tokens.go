package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"localmart/internal/logger"
	"localmart/internal/storage"

	"go.uber.org/zap"
)

// Tokens keeps the bearer token and user record in local storage and hands
// the token to the API client.
type Tokens struct {
	store storage.Store
	now   func() time.Time
}

func NewTokens(store storage.Store) *Tokens {
	return &Tokens{store: store, now: time.Now}
}

// Token returns the stored bearer token, or "" when there is none or it has
// expired.
func (t *Tokens) Token(ctx context.Context) (string, error) {
	raw, err := t.store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(raw))
	if claims, err := ParseClaims(token); err == nil && claims.Expired(t.now()) {
		logger.FromCtx(ctx).Info("stored token expired",
			zap.String("layer", "auth"),
			zap.Time("expired_at", claims.ExpiresAt.Time),
		)
		return "", nil
	}
	return token, nil
}

// User returns the stored user record. A missing or malformed record is
// ErrNotSignedIn.
func (t *Tokens) User(ctx context.Context) (*User, error) {
	raw, err := t.store.Get(ctx, storage.KeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, err
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil || u.Validate() != nil {
		logger.FromCtx(ctx).Warn("stored user record is malformed",
			zap.String("layer", "auth"),
			zap.Error(err),
		)
		return nil, ErrNotSignedIn
	}
	return &u, nil
}

func (t *Tokens) Save(ctx context.Context, token string, u *User) error {
	if err := t.store.Set(ctx, storage.KeyToken, []byte(token)); err != nil {
		return err
	}
	return t.SaveUser(ctx, u)
}

func (t *Tokens) SaveUser(ctx context.Context, u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, storage.KeyUser, data)
}

func (t *Tokens) Clear(ctx context.Context) error {
	return errors.Join(
		t.store.Delete(ctx, storage.KeyToken),
		t.store.Delete(ctx, storage.KeyUser),
	)
}
