package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error

	// GoogleAuthURL returns the consent page URL for the given CSRF state.
	GoogleAuthURL(state string) string
	// OAuthCallbackGoogle exchanges the code and signs the linked user in.
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)
}
