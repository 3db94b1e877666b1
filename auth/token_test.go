package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-booking-api/model"
)

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return tokens
}

func TestNewTokenServiceRejectsEmptySecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService("x", 0)
	assert.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tokens := newTestTokens(t)
	identity := Identity{Id: "64f0c0ffee", Email: "a@x.com", Role: model.RoleAdmin}

	token, err := tokens.IssueDefault(identity)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// neighbour swaps c for the alphabet character differing only in the lowest bit, which
// in a segment's last character is a padding bit.
func neighbour(c byte) byte {
	return base64URLAlphabet[strings.IndexByte(base64URLAlphabet, c)^1]
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.IssueDefault(Identity{Id: "u1", Email: "a@x.com", Role: model.RoleUser})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payloadStart := len(parts[0]) + 1
	signatureStart := payloadStart + len(parts[1]) + 1
	offsets := []int{
		0,
		1,
		len(parts[0]) / 2,
		len(parts[0]) - 1,
		payloadStart,
		payloadStart + len(parts[1])/2,
		payloadStart + len(parts[1]) - 1,
		signatureStart,
		signatureStart + len(parts[2])/2,
		len(token) - 1,
	}
	for _, offset := range offsets {
		tampered := []byte(token)
		tampered[offset] = neighbour(tampered[offset])
		require.NotEqual(t, token, string(tampered))

		_, err := tokens.Verify(string(tampered))
		assert.ErrorIsf(t, err, ErrInvalidToken, "offset %d", offset)
	}
}

func TestVerifyRejectsEveryByteChange(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.IssueDefault(Identity{Id: "u1", Email: "a@x.com", Role: model.RoleUser})
	require.NoError(t, err)

	for offset := 0; offset < len(token); offset++ {
		if token[offset] == '.' {
			continue
		}
		tampered := []byte(token)
		tampered[offset] = neighbour(tampered[offset])

		_, err := tokens.Verify(string(tampered))
		assert.ErrorIsf(t, err, ErrInvalidToken, "offset %d", offset)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.Issue(Identity{Id: "u1", Email: "a@x.com", Role: model.RoleUser}, -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecretAndAlgorithm(t *testing.T) {
	tokens := newTestTokens(t)
	other, err := NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)

	foreign, err := other.IssueDefault(Identity{Id: "u1", Email: "a@x.com", Role: model.RoleUser})
	require.NoError(t, err)
	_, err = tokens.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims := Claims{
		Identity:         Identity{Id: "u1", Email: "a@x.com", Role: model.RoleAdmin},
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
