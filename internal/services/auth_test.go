package services

import (
	"strings"
	"testing"
	"time"

	"inventory-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret-key-for-testing-only",
			ExpiresIn:        "720h",
			PendingExpiresIn: "10m",
			Issuer:           "inventory-api-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 10,
		},
		TOTP: config.TOTPConfig{
			Issuer: "Enterprise Inventory Test",
		},
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	authService := NewAuthService(testConfig())

	hash, err := authService.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, authService.VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, authService.VerifyPassword(hash, "correct horse battery stapl"))
	assert.False(t, authService.VerifyPassword(hash, "Correct horse battery staple"))
	assert.False(t, authService.VerifyPassword(hash, ""))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	authService := NewAuthService(testConfig())

	// A malformed digest must fail verification, never panic
	assert.False(t, authService.VerifyPassword("not-a-bcrypt-hash", "whatever"))
	assert.False(t, authService.VerifyPassword("", "whatever"))
}

func TestIssueAndParseToken(t *testing.T) {
	authService := NewAuthService(testConfig())

	token, expiresAt, err := authService.IssueToken(42, TokenKindFull)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	userID, err := authService.ParseToken(token, TokenKindFull)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseToken_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.ExpiresIn = "-1s"
	authService := NewAuthService(cfg)

	token, _, err := authService.IssueToken(7, TokenKindFull)
	require.NoError(t, err)

	_, err = authService.ParseToken(token, TokenKindFull)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_TamperedSignature(t *testing.T) {
	authService := NewAuthService(testConfig())

	token, _, err := authService.IssueToken(7, TokenKindFull)
	require.NoError(t, err)

	// Flip the first signature character
	sigStart := strings.LastIndex(token, ".") + 1
	flipped := byte('A')
	if token[sigStart] == 'A' {
		flipped = 'B'
	}
	tampered := token[:sigStart] + string(flipped) + token[sigStart+1:]

	_, err = authService.ParseToken(tampered, TokenKindFull)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	authService := NewAuthService(testConfig())

	_, err := authService.ParseToken("not.a.jwt", TokenKindFull)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = authService.ParseToken("", TokenKindFull)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongKind(t *testing.T) {
	authService := NewAuthService(testConfig())

	// A pending token must not be accepted where a full session token is
	// required, and vice versa
	pending, _, err := authService.IssueToken(7, TokenKindPending)
	require.NoError(t, err)
	_, err = authService.ParseToken(pending, TokenKindFull)
	assert.ErrorIs(t, err, ErrInvalidToken)

	full, _, err := authService.IssueToken(7, TokenKindFull)
	require.NoError(t, err)
	_, err = authService.ParseToken(full, TokenKindPending)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	authService := NewAuthService(testConfig())

	token, _, err := authService.IssueToken(7, TokenKindFull)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "a-different-secret"
	otherService := NewAuthService(otherCfg)

	_, err = otherService.ParseToken(token, TokenKindFull)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
