package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	signed, err := svc.Issue("buyer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	email, err := svc.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "buyer@example.com", email)
}

func TestParseWrongSecret(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}
	signed, err := svc.Issue("buyer@example.com")
	require.NoError(t, err)

	other := &Service{Secret: []byte("other_secret")}
	_, err = other.Parse(signed)
	require.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	secret := []byte("test_secret")
	claims := jwt.MapClaims{
		"email": "buyer@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	svc := &Service{Secret: secret}
	_, err = svc.Parse(signed)
	require.Error(t, err)
}

func TestParseAcceptedJustBeforeExpiry(t *testing.T) {
	secret := []byte("test_secret")
	claims := jwt.MapClaims{
		"email": "buyer@example.com",
		"exp":   time.Now().Add(TTL - time.Second).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	svc := &Service{Secret: secret}
	email, err := svc.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "buyer@example.com", email)
}

func TestParseGarbage(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	_, err := svc.Parse("not.a.token")
	require.Error(t, err)

	_, err = svc.Parse("")
	require.Error(t, err)
}

func TestParseMissingEmailClaim(t *testing.T) {
	secret := []byte("test_secret")
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	svc := &Service{Secret: secret}
	_, err = svc.Parse(signed)
	require.Error(t, err)
}
