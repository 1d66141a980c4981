package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/kestrelhq/ops-backend-go/internal/domain/auth"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/jwt"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/oauth"
	"github.com/kestrelhq/ops-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db        *database.DB
	userRepo  user.UserRepository
	jwtRepo   postgresql.JWTRepository
	jwtSvc    jwt.Service
	googleSvc oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	jwtRepo postgresql.JWTRepository,
	jwtSvc jwt.Service,
	googleSvc oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:        db,
		userRepo:  userRepo,
		jwtRepo:   jwtRepo,
		jwtSvc:    jwtSvc,
		googleSvc: googleSvc,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if u.PasswordHash == nil {
		// Google-only account, no password to check against.
		return auth.TokenResponse{}, auth.ErrPasswordNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// RefreshToken implements auth.AuthService.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	revoked, err := s.jwtRepo.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtSvc.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

// Logout implements auth.AuthService. The access token goes on the
// in-memory denylist, the refresh token is revoked in storage.
func (s *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.AccessToken != "" {
		s.jwtSvc.RevokeToken(req.AccessToken)
	}
	if req.RefreshToken != "" {
		if err := s.jwtRepo.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

// GoogleAuthURL implements auth.AuthService.
func (s *AuthServiceImpl) GoogleAuthURL(state string) string {
	return s.googleSvc.RedirectURL(state)
}

// OAuthCallbackGoogle implements auth.AuthService. Sign-in only: accounts
// are provisioned by an admin, never created from a Google profile.
func (s *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := s.googleSvc.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	profile, err := s.googleSvc.FetchProfile(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !profile.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrUserNotFound
		}
		return auth.TokenResponse{}, err
	}

	if u.OAuthSubject == nil {
		u, err = s.userRepo.LinkGoogleAccount(ctx, profile.GoogleID, profile.Email)
		if err != nil {
			return auth.TokenResponse{}, err
		}
	}

	return s.issueTokens(ctx, u)
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	accessToken, accessExpires, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	refreshToken, refreshExpires, err := s.jwtSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := s.jwtRepo.CreateRefreshToken(ctx, u.ID, refreshToken, refreshExpires); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpires,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpires,
	}, nil
}
