package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenMalformed is returned when a token cannot be parsed or its
// signature does not verify.
var ErrTokenMalformed = errors.New("token is malformed")

// ErrTokenExpired is returned when a token is past its expiry.
var ErrTokenExpired = errors.New("token has expired")

// TokenConfig holds the JWT signing configuration.
type TokenConfig struct {
	Secret    []byte
	ExpiresIn time.Duration
}

// TokenClaims are the claims embedded in an access token.
type TokenClaims struct {
	UserID   uint
	Username string
	Exp      int64
	Iat      int64
}

// JWTService issues and verifies HS256 access tokens. Tokens are
// stateless: there is no revocation list, so a token stays valid until
// its expiry.
type JWTService struct {
	config  TokenConfig
	timeNow func() time.Time
}

// NewJWTService creates a new JWT service.
func NewJWTService(secret string, expiresIn time.Duration) (*JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long, got %d", len(secret))
	}
	if expiresIn <= 0 {
		expiresIn = 30 * time.Minute
	}

	return &JWTService{
		config: TokenConfig{
			Secret:    []byte(secret),
			ExpiresIn: expiresIn,
		},
		timeNow: time.Now,
	}, nil
}

// SetTimeFunc overrides the clock (tests only).
func (s *JWTService) SetTimeFunc(fn func() time.Time) {
	s.timeNow = fn
}

// ExpiresIn returns the configured access token TTL.
func (s *JWTService) ExpiresIn() time.Duration {
	return s.config.ExpiresIn
}

// IssueToken generates an access token binding the user identity to
// an absolute expiry.
func (s *JWTService) IssueToken(userID uint, username string) (string, time.Time, error) {
	now := s.timeNow()
	expiry := now.Add(s.config.ExpiresIn)

	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      expiry.Unix(),
		"iat":      now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, expiry, nil
}

// VerifyToken parses and validates a token, returning its claims.
// Expired tokens map to ErrTokenExpired; everything else that fails
// (bad signature, wrong algorithm, garbage input, missing claims)
// maps to ErrTokenMalformed. Whether the user still exists is the
// caller's concern.
func (s *JWTService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.config.Secret, nil
	}, jwt.WithTimeFunc(s.timeNow))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrTokenMalformed
	}
	username, _ := claims["username"].(string)
	expFloat, _ := claims["exp"].(float64)
	iatFloat, _ := claims["iat"].(float64)

	return &TokenClaims{
		UserID:   uint(userIDFloat),
		Username: username,
		Exp:      int64(expFloat),
		Iat:      int64(iatFloat),
	}, nil
}
