package auth

import (
	"context"
	"testing"
	"time"

	"localmart/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := Claims{UserID: "u1", Email: "asha@example.com", Role: RoleAdmin}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestParseClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	claims, err := ParseClaims(signedToken(t, &exp))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)

	assert.False(t, claims.Expired(exp.Add(-time.Second)))
	assert.True(t, claims.Expired(exp))

	noExp, err := ParseClaims(signedToken(t, nil))
	require.NoError(t, err)
	assert.False(t, noExp.Expired(time.Now()))

	_, err = ParseClaims("opaque-token")
	assert.Error(t, err)
}

func TestTokens_Token(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newTokens := func() (*Tokens, *storage.Memory) {
		mem := storage.NewMemory()
		tk := NewTokens(mem)
		tk.now = func() time.Time { return now }
		return tk, mem
	}

	t.Run("Absent", func(t *testing.T) {
		tk, _ := newTokens()
		tok, err := tk.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok)
	})

	t.Run("Valid JWT", func(t *testing.T) {
		tk, mem := newTokens()
		exp := now.Add(time.Hour)
		want := signedToken(t, &exp)
		require.NoError(t, mem.Set(ctx, storage.KeyToken, []byte(want+"\n")))

		tok, err := tk.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, tok)
	})

	t.Run("Expired JWT is dropped", func(t *testing.T) {
		tk, mem := newTokens()
		exp := now.Add(-time.Minute)
		require.NoError(t, mem.Set(ctx, storage.KeyToken, []byte(signedToken(t, &exp))))

		tok, err := tk.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok)
	})

	t.Run("Opaque token passes through", func(t *testing.T) {
		tk, mem := newTokens()
		require.NoError(t, mem.Set(ctx, storage.KeyToken, []byte("abc123")))

		tok, err := tk.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc123", tok)
	})
}

func TestTokens_User(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	tk := NewTokens(mem)

	_, err := tk.User(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	require.NoError(t, mem.Set(ctx, storage.KeyUser, []byte(`{broken`)))
	_, err = tk.User(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	require.NoError(t, mem.Set(ctx, storage.KeyUser, []byte(`{"name":"no id"}`)))
	_, err = tk.User(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	u := &User{ID: "u1", Name: "Asha", Email: "asha@example.com", Phone: "9845012345", Role: RoleUser}
	require.NoError(t, tk.Save(ctx, "tok", u))
	got, err := tk.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	require.NoError(t, tk.Clear(ctx))
	_, err = tk.User(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)
	tok, err := tk.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
