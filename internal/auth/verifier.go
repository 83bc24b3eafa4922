// Package auth verifies preview tokens that unlock draft content.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"beacon/internal/domain"
)

// PreviewClaims are the claims a preview token must carry.
type PreviewClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// PreviewVerifier validates preview tokens presented on draft requests.
type PreviewVerifier interface {
	VerifyToken(tokenString string) (*PreviewClaims, error)
	Close() error
}

// JWKSVerifier implements PreviewVerifier against a JWKS endpoint.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier that fetches public keys from the
// identity provider's JWKS endpoint. Keys are cached and refreshed by the
// keyfunc library based on HTTP cache headers.
func NewJWKSVerifier(ctx context.Context, jwksURL string, logger *slog.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("preview verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates a preview JWT and extracts its claims.
// Returns domain.ErrUnauthorized for anything but a valid editor token.
func (v *JWKSVerifier) VerifyToken(tokenString string) (*PreviewClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PreviewClaims{}, v.jwks.Keyfunc)
	if err != nil {
		v.logger.Debug("preview token parse failed", "error", err.Error())
		return nil, &domain.UnauthorizedError{Message: "invalid preview token"}
	}

	if !token.Valid {
		return nil, &domain.UnauthorizedError{Message: "invalid preview token"}
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
		// allowed
	default:
		v.logger.Warn("preview token uses unexpected algorithm",
			"algorithm", token.Method.Alg(),
			"allowed", []string{"RS256", "ES256"})
		return nil, &domain.UnauthorizedError{Message: "invalid preview token"}
	}

	claims, ok := token.Claims.(*PreviewClaims)
	if !ok {
		return nil, &domain.UnauthorizedError{Message: "invalid preview token"}
	}

	if claims.Subject == "" {
		return nil, &domain.UnauthorizedError{Message: "preview token missing subject"}
	}

	// Only editor tokens may see drafts - reject anonymous/reader tokens
	if claims.Role != "editor" {
		v.logger.Debug("preview token has invalid role",
			"role", claims.Role,
			"subject", claims.Subject)
		return nil, &domain.UnauthorizedError{Message: "preview requires editor role"}
	}

	return claims, nil
}

// Close releases resources held by the verifier. keyfunc v3 manages its
// own refresh lifecycle, so this is a no-op kept for shutdown symmetry.
func (v *JWKSVerifier) Close() error {
	return nil
}
