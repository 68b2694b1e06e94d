package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-32-characters"

func testIdentity() Identity {
	return Identity{
		ID:    "0b7e7c1e-6a38-4f38-9d2c-1f0a4b1d9a01",
		Email: "owner@example.com",
		Name:  "Store Owner Number One",
		Role:  models.RoleOwner,
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, expiresAt, err := svc.Issue(testIdentity())
	require.NoError(t, err)
	assert.Contains(t, token, ".")
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), *identity)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	valid, _, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	expiredSvc := &jwtTokenService{
		secret: []byte(testSecret),
		ttl:    time.Minute,
		now:    func() time.Time { return time.Now().Add(-2 * time.Hour) },
	}
	expired, _, err := expiredSvc.Issue(testIdentity())
	require.NoError(t, err)

	otherKey, _, err := NewTokenService("another-secret", time.Hour).Issue(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   "someone",
		"role": string(models.RoleAdministrator),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "someone",
		"role": string(models.RoleAdministrator),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "someone",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expired},
		{name: "signed with another key", token: otherKey},
		{name: "tampered payload", token: tampered},
		{name: "alg none", token: noneToken},
		{name: "missing exp", token: noExpiry},
		{name: "unknown role", token: badRole},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, identity)
		})
	}
}

func TestIssueRejectsIncompleteIdentity(t *testing.T) {
	svc := NewTokenService(testSecret, 0)

	_, _, err := svc.Issue(Identity{Role: models.RoleNormal})
	assert.Error(t, err)

	_, _, err = svc.Issue(Identity{ID: "x", Role: "root"})
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Secret!23")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret!23", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.True(t, CheckPassword(hash, "Secret!23"))
	assert.False(t, CheckPassword(hash, "secret!23"))
	assert.False(t, CheckPassword("not-a-hash", "Secret!23"))

	other, err := HashPassword("Secret!23")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes must be salted")
}
