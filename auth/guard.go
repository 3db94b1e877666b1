package auth

import (
	"errors"
	"strings"

	"event-booking-api/model"
)

var (
	ErrUnauthenticated = errors.New("missing or invalid bearer token")
	ErrForbidden       = errors.New("access denied")
)

type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Guard turns an Authorization header into verified claims. It holds no state besides the
// verifier and never caches decisions.
type Guard struct {
	tokens Verifier
}

func NewGuard(tokens Verifier) *Guard {
	return &Guard{tokens: tokens}
}

func (g *Guard) Authenticate(authorization string) (*Claims, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || scheme != "Bearer" {
		return nil, ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

func RequireRole(claims *Claims, role model.Role) error {
	if claims == nil || claims.Role != role {
		return ErrForbidden
	}
	return nil
}
