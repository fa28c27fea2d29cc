package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
	"github.com/mmynk/ledgerwise/internal/storage/memory"
)

func newTestAuthenticator() *PasswordAuthenticator {
	a := NewPasswordAuthenticator(memory.New())
	a.cost = bcrypt.MinCost
	return a
}

func TestValidateCredential(t *testing.T) {
	a := newTestAuthenticator()

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "valid", password: "Passw0rd!"},
		{name: "too short", password: "Pa0!", wantErr: "at least 8 characters"},
		{name: "no uppercase", password: "passw0rd!", wantErr: "uppercase"},
		{name: "no lowercase", password: "PASSW0RD!", wantErr: "lowercase"},
		{name: "no digit", password: "Password!", wantErr: "number"},
		{name: "no special", password: "Passw0rdd", wantErr: "special character"},
		{name: "dash is not special", password: "Passw0rd-", wantErr: "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.ValidateCredential(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakPassword)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()

	user, err := a.Register(ctx, "alice", "Secr3t!pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "Secr3t!pw", user.PasswordHash)
	assert.NotZero(t, user.CreatedAt)

	_, err = a.Register(ctx, "alice", "Other1!pw")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = a.Register(ctx, "bob smith", "Secr3t!pw")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = a.Register(ctx, "bob", "weak")
	assert.ErrorIs(t, err, ErrWeakPassword)

	got, err := a.Authenticate(ctx, "alice", "Secr3t!pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = a.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody", "Secr3t!pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

type brokenUsers struct{}

func (brokenUsers) CreateUser(context.Context, *models.User) error {
	return fmt.Errorf("%w: locked", storage.ErrStorage)
}

func (brokenUsers) GetUser(context.Context, string) (*models.User, error) {
	return nil, fmt.Errorf("%w: locked", storage.ErrStorage)
}

func TestAuthenticate_StorageFailureIsNotBadCredentials(t *testing.T) {
	a := NewPasswordAuthenticator(brokenUsers{})
	_, err := a.Authenticate(context.Background(), "alice", "Secr3t!pw")
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{Username: "alice"}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, tokenIssuer, claims.Issuer)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTManager("other", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := NewJWTManager("test-secret", -time.Minute).Generate(user)
		require.NoError(t, err)
		_, err = m.Validate(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}})
		raw, err := foreign.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = m.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		forever := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject: "alice",
			Issuer:  tokenIssuer,
		}})
		raw, err := forever.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = m.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
