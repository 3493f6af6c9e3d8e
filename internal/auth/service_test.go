package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo keeps users and revoked jtis in memory.
type fakeRepo struct {
	usersByEmail map[string]User
	blacklist    map[string]time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByEmail: make(map[string]User),
		blacklist:    make(map[string]time.Time),
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, u *User) error {
	if _, ok := f.usersByEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	u.CreatedAt = time.Now()
	f.usersByEmail[u.Email] = *u
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) BlacklistToken(_ context.Context, jti, userID string, expiresAt time.Time) error {
	f.blacklist[jti] = expiresAt
	return nil
}

func (f *fakeRepo) IsTokenBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := f.blacklist[jti]
	return ok, nil
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService("secret", 15*time.Minute, newFakeRepo())

	u, err := svc.Register(ctx, "John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "USER", u.Role)
	assert.NotEqual(t, "password123", u.Password)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "Other", "john@example.com", "password456")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login with correct password", func(t *testing.T) {
		token, expiresIn, err := svc.Login(ctx, "john@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, 900, expiresIn)
	})

	t.Run("wrong password and unknown user collapse to one error", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "john@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_VerifyAndLogout(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService("secret", 15*time.Minute, repo)

	_, err := svc.Register(ctx, "John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)

	identity, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "USER", identity.Role)
	assert.NotEmpty(t, identity.UserID)

	t.Run("logout revokes the token", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, token))

		_, err := svc.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.Verify(ctx, token+"x")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("logout with a bad token", func(t *testing.T) {
		assert.ErrorIs(t, svc.Logout(ctx, "not.a.token"), ErrUnauthorized)
	})
}
