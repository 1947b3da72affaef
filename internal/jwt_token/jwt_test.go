package jwttoken

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "motorhub/pkg/domain"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/requestcontext"
)

var userID = id.UserID(uuid.New())

func newService() *JWTService {
	return NewJWTService("test-signing-key", "motorhub-test", time.Hour)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateAccessToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateRejectsNilUser(t *testing.T) {
	_, err := newService().GenerateAccessToken(context.Background(), id.UserID{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestValidateToken(t *testing.T) {
	svc := newService()

	t.Run("expired", func(t *testing.T) {
		ctx := requestcontext.WithTime(context.Background(), time.Now().Add(-2*time.Hour))
		token, err := svc.GenerateAccessToken(ctx, userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorContains(t, err, "token expired")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorContains(t, err, "invalid token")
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewJWTService("other-key", "motorhub-test", time.Hour)
		token, err := other.GenerateAccessToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService("test-signing-key", "someone-else", time.Hour)
		token, err := other.GenerateAccessToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, AccessTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String(), Issuer: "motorhub-test"},
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		require.Error(t, err)
	})
}

func TestAdapter(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateAccessToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(svc).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.NotEmpty(t, claims.JTI)
}
