package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storehubapp/storehub-server/internal/auth"
	"github.com/storehubapp/storehub-server/internal/domain"
	"github.com/storehubapp/storehub-server/internal/email"
	domainerrors "github.com/storehubapp/storehub-server/internal/errors"
	"github.com/storehubapp/storehub-server/internal/id"
	"github.com/storehubapp/storehub-server/internal/revocation"
	"github.com/storehubapp/storehub-server/internal/store"
)

// AuthService handles user registration, login, token refresh, and logout.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	revocations  revocation.Store
	notifier     email.Notifier
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	st store.Store,
	tokenService *auth.TokenService,
	revocations revocation.Store,
	notifier email.Notifier,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        st,
		tokenService: tokenService,
		revocations:  revocations,
		notifier:     notifier,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthTokens contains the token pair issued on login.
type AuthTokens struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new user account and sends a welcome email.
// The email is fire-and-forget: a delivery failure never fails registration.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Welcome email runs on its own context so a client disconnect right
	// after registration doesn't cancel delivery.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.notifier.SendWelcome(sendCtx, user.Email, user.Username); err != nil {
			s.logger.Warn("welcome email failed",
				"user_id", user.ID,
				"error", err)
		}
	}()

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Login authenticates a user and issues an access and refresh token pair.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthTokens, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Don't leak whether the username exists.
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthTokens{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The presented
// refresh token is revoked, so each refresh token is single-use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", domainerrors.Unauthorized("invalid or expired refresh token")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return "", fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return "", domainerrors.TokenRevoked("refresh token has been revoked")
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domainerrors.Unauthorized("user no longer exists")
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	// Rotate: the presented refresh token is spent.
	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.TTL()); err != nil {
		return "", fmt.Errorf("revoke refresh token: %w", err)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("token refreshed", "user_id", user.ID)

	return accessToken, nil
}

// Logout revokes the presented access token. The token is rejected from now
// until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		return domainerrors.Unauthorized("invalid or expired token")
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.TTL()); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}

	s.logger.Info("user logged out", "user_id", claims.UserID)

	return nil
}

// VerifyAccessToken verifies an access token and checks it against the
// revocation store. Returns the claims when the token is still good.
func (s *AuthService) VerifyAccessToken(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, domainerrors.TokenRevoked("token has been revoked")
	}

	return claims, nil
}
