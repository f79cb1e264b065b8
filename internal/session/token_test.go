package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/0nyxlabs/merchanding/internal/constants"
	inErrors "github.com/0nyxlabs/merchanding/internal/errors"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, mutate func(*jwt.RegisteredClaims, *appMetadata)) (string, uuid.UUID) {
	t.Helper()

	userId := uuid.New()
	registered := jwt.RegisteredClaims{
		Subject:   userId.String(),
		Audience:  jwt.ClaimStrings{constants.AudienceStorefront},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	metadata := appMetadata{}
	if mutate != nil {
		mutate(&registered, &metadata)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: registered,
		AppMetadata:      metadata,
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed, userId
}

func TestVerifyToken(t *testing.T) {
	c := context.Background()
	signed, userId := signToken(t, testSecret, nil)

	sess, err := VerifyToken(c, signed, testSecret)
	assert.NoError(t, err)
	assert.EqualValues(t, userId, sess.UserID)
	assert.EqualValues(t, signed, sess.AccessToken)
	assert.False(t, sess.IsAdmin())
}

func TestVerifyTokenAdminRole(t *testing.T) {
	c := context.Background()
	signed, _ := signToken(t, testSecret, func(_ *jwt.RegisteredClaims, metadata *appMetadata) {
		metadata.Role = RoleAdmin
	})

	sess, err := VerifyToken(c, signed, testSecret)
	assert.NoError(t, err)
	assert.True(t, sess.IsAdmin())
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	c := context.Background()
	signed, _ := signToken(t, "other-secret", nil)

	_, err := VerifyToken(c, signed, testSecret)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	c := context.Background()
	signed, _ := signToken(t, testSecret, func(registered *jwt.RegisteredClaims, _ *appMetadata) {
		registered.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	})

	_, err := VerifyToken(c, signed, testSecret)
	assert.Error(t, err)
}

func TestVerifyTokenWrongAudience(t *testing.T) {
	c := context.Background()
	signed, _ := signToken(t, testSecret, func(registered *jwt.RegisteredClaims, _ *appMetadata) {
		registered.Audience = jwt.ClaimStrings{"other-audience"}
	})

	_, err := VerifyToken(c, signed, testSecret)
	assert.Error(t, err)
}

func TestVerifyTokenMissingSubject(t *testing.T) {
	c := context.Background()
	signed, _ := signToken(t, testSecret, func(registered *jwt.RegisteredClaims, _ *appMetadata) {
		registered.Subject = ""
	})

	_, err := VerifyToken(c, signed, testSecret)
	assert.ErrorIs(t, err, inErrors.ErrEmptySubject)
}

func TestSessionContextRoundtrip(t *testing.T) {
	c := context.Background()

	_, ok := FromContext(c)
	assert.False(t, ok)

	sess := Session{UserID: uuid.New(), Role: RoleAdmin, AccessToken: "token"}
	c = AttachToContext(c, sess)

	actual, ok := FromContext(c)
	assert.True(t, ok)
	assert.EqualValues(t, sess, actual)
}
