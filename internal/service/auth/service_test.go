package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kestrelhq/ops-backend-go/internal/domain/auth"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	for id, u := range f.users {
		if u.Email == email {
			provider := "google"
			u.OAuthProvider = &provider
			u.OAuthSubject = &googleID
			f.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) UpdateHourlyRate(ctx context.Context, userID string, rate string) error {
	return nil
}

type fakeJWTRepo struct {
	stored map[string]bool // token -> revoked
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{stored: make(map[string]bool)}
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	f.stored[token] = false
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	revoked, ok := f.stored[token]
	if !ok {
		return true, nil
	}
	return revoked, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.stored[token] = true
	return nil
}

const password = "correct-horse-battery"

func setup(t *testing.T) (auth.AuthService, *fakeJWTRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Email: "ada@example.com", FullName: "Ada Lovelace", Role: user.RoleWorker, PasswordHash: &h},
	}}
	jwtRepo := newFakeJWTRepo()
	jwtSvc := jwt.NewJWTService("test-secret-key", "15m", "168h")

	return NewAuthService(nil, users, jwtRepo, jwtSvc, nil), jwtRepo
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, jwtRepo := setup(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ada@example.com",
		Password: password,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)
	assert.Contains(t, jwtRepo.stored, resp.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: password,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := setup(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ada@example.com",
		Password: password,
	})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshAfterLogoutFails(t *testing.T) {
	svc, _ := setup(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ada@example.com",
		Password: password,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), auth.LogoutRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	}))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshWithAccessTokenRejected(t *testing.T) {
	svc, jwtRepo := setup(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ada@example.com",
		Password: password,
	})
	require.NoError(t, err)

	// Sneak the access token past the storage check to prove the type
	// claim alone rejects it.
	jwtRepo.stored[login.AccessToken] = false

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
