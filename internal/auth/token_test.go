package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/config"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "appointment-api",
		JWTAudience: "appointment-clients",
		TokenTTLMin: 10,
	}
}

func TestTokenRoundTripPreservesClaims(t *testing.T) {
	signer := NewTokenSigner(testConfig())

	claims := &identity.Claims{
		UserID:   42,
		Username: "jane",
		FullName: "Jane Doe",
		Roles:    []string{"Admin", "Staff"},
	}

	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	parsed, err := signer.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, claims, parsed)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	signer := NewTokenSigner(testConfig())

	other := testConfig()
	other.JWTSecret = "different-secret"
	otherSigner := NewTokenSigner(other)

	raw, err := otherSigner.Sign(&identity.Claims{UserID: 1, Username: "jane"})
	require.NoError(t, err)

	_, err = signer.Parse(raw)
	require.Error(t, err)
}

func TestTokenWrongIssuerRejected(t *testing.T) {
	signer := NewTokenSigner(testConfig())

	other := testConfig()
	other.JWTIssuer = "someone-else"
	otherSigner := NewTokenSigner(other)

	raw, err := otherSigner.Sign(&identity.Claims{UserID: 1, Username: "jane"})
	require.NoError(t, err)

	_, err = signer.Parse(raw)
	require.Error(t, err)
}

func TestTokenExpiryRejected(t *testing.T) {
	cfg := testConfig()
	cfg.TokenTTLMin = -1 // already expired at mint time
	expiredSigner := NewTokenSigner(cfg)

	raw, err := expiredSigner.Sign(&identity.Claims{UserID: 1, Username: "jane"})
	require.NoError(t, err)

	_, err = NewTokenSigner(testConfig()).Parse(raw)
	require.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	require.NoError(t, VerifyPassword(hash, "secret123"))
	require.Error(t, VerifyPassword(hash, "secret124"))

	// Hashes are salted: two hashes of the same password differ but both
	// verify.
	again, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, hash, again)
	require.NoError(t, VerifyPassword(again, "secret123"))
}
