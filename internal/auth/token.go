// Package auth issues and validates bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"task-tracker-api/internal/domain"
)

var (
	// ErrInvalidToken covers malformed, badly signed and expired tokens
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrRevokedToken is returned for tokens put on the denylist by logout
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims carried by issued tokens
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses HS256 tokens with a fixed lifetime
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for user
func (m *TokenManager) Issue(user *domain.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns its claims
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validator checks signature, expiry and the optional denylist
type Validator struct {
	tokens   *TokenManager
	denylist Denylist
}

// NewValidator creates a Validator. denylist may be nil.
func NewValidator(tokens *TokenManager, denylist Denylist) *Validator {
	return &Validator{tokens: tokens, denylist: denylist}
}

// ValidateToken returns the user id of a valid, unrevoked token
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := v.tokens.Parse(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if v.denylist != nil {
		revoked, err := v.denylist.IsRevoked(ctx, tokenString)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to check token denylist: %w", err)
		}
		if revoked {
			return uuid.Nil, ErrRevokedToken
		}
	}
	return uuid.MustParse(claims.UserID), nil
}

// Revoke puts tokenString on the denylist until it would have expired.
// Without a denylist it is a no-op, tokens then stay valid until expiry.
func (v *Validator) Revoke(ctx context.Context, tokenString string) error {
	if v.denylist == nil {
		return nil
	}
	claims, err := v.tokens.Parse(tokenString)
	if err != nil {
		return err
	}
	return v.denylist.Revoke(ctx, tokenString, claims.ExpiresAt.Time)
}
