package token

import (
	"strings"
	"testing"
	"time"

	domain "cinemacenter/backend/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = &domain.User{ID: "u-alice", Username: "alice"}

func newTestManager(t *testing.T, secret string) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(secret, "cinema-center")
	require.NoError(t, err)
	return m
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	t.Parallel()

	for _, secret := range []string{"", "   "} {
		m, err := NewJWTManager(secret, "cinema-center")
		assert.Nil(t, m)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	}
}

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "super-secret")

	before := time.Now().Add(-time.Second)
	tok, err := m.Generate(alice)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."))

	identity, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-alice", identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.True(t, identity.IssuedAt.After(before))
	assert.Equal(t, Validity, identity.ExpiresAt.Sub(identity.IssuedAt))
}

func TestGenerate_EmbedsSubjectAndAlgorithm(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "super-secret")

	tok, err := m.Generate(alice)
	require.NoError(t, err)

	claims := &Claims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, "HS256", parsed.Method.Alg())
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "u-alice", claims.UserID)
	assert.Equal(t, "cinema-center", claims.Issuer)
}

func TestGenerate_RequiresSubject(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "super-secret")

	_, err := m.Generate(nil)
	assert.Error(t, err)
	_, err = m.Generate(&domain.User{Username: "ghost"})
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "secret")
	m.nowFunc = func() time.Time { return time.Now().Add(-Validity - time.Minute) }

	tok, err := m.Generate(alice)
	require.NoError(t, err)

	m.nowFunc = time.Now
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
	assert.NotErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidate_StillValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "secret")
	issued := time.Now()
	m.nowFunc = func() time.Time { return issued }

	tok, err := m.Generate(alice)
	require.NoError(t, err)

	m.nowFunc = func() time.Time { return issued.Add(Validity - time.Minute) }
	_, err = m.Validate(tok)
	assert.NoError(t, err)

	m.nowFunc = func() time.Time { return issued.Add(Validity + time.Minute) }
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestManager(t, "right-secret").Generate(alice)
	require.NoError(t, err)

	_, err = newTestManager(t, "wrong-secret").Validate(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidate_WrongSecretAndExpiredIsInvalid(t *testing.T) {
	t.Parallel()

	issuer := newTestManager(t, "right-secret")
	issuer.nowFunc = func() time.Time { return time.Now().Add(-2 * Validity) }
	tok, err := issuer.Generate(alice)
	require.NoError(t, err)

	_, err = newTestManager(t, "wrong-secret").Validate(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidate_RejectsMalformedAndUnsigned(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "k")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u-alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cinema-center",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, tok := range []string{"", "not.a.jwt", "abc", noneToken} {
		_, err := m.Validate(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", tok)
	}
}

func TestValidate_RejectsMissingExpiryAndForeignIssuer(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "k")

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u-alice",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "cinema-center"},
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = m.Validate(noExpiry)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u-alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = m.Validate(foreign)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidate_RequiresUserID(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, "k")

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cinema-center",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
