package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"event-booking-api/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

func init() {
	// reject segments whose unused trailing base64 bits are set
	jwt.DecodeStrict = true
}

// Identity is what a token asserts about its bearer.
type Identity struct {
	Id    string     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens signed with one shared secret.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, defaultTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", defaultTTL)
	}
	return &TokenService{secret: []byte(secret), defaultTTL: defaultTTL, now: time.Now}, nil
}

func (s *TokenService) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("cannot sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) IssueDefault(identity Identity) (string, error) {
	return s.Issue(identity, s.defaultTTL)
}

// Verify checks signature, algorithm and expiry. Every failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Id == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
