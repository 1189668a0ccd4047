package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storehubapp/storehub-server/internal/auth"
)

// bearerToken extracts the raw token from an Authorization header.
func bearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	return parts[1], nil
}

// authenticateRequest validates the Authorization header and returns the
// token claims.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (*auth.Claims, error) {
	token, err := bearerToken(authHeader)
	if err != nil {
		return nil, err
	}

	claims, err := s.services.Auth.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
