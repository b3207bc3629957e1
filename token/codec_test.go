package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	errs "github.com/sentirsebien/go-client/internal/errors"
	"github.com/sentirsebien/go-client/token"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecodeExtractsClaims(t *testing.T) {
	now := time.Now()
	raw := signToken(t, jwtlib.MapClaims{
		"user_id":    float64(42),
		"token_type": "access",
		"exp":        now.Add(5 * time.Minute).Unix(),
		"iat":        now.Unix(),
		"jti":        "abc-123",
	})

	claims, err := token.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, "abc-123", claims.JTI)
	require.WithinDuration(t, now.Add(5*time.Minute), claims.ExpiresAt(), time.Second)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "   "},
		{name: "two parts", raw: "aaaa.bbbb"},
		{name: "not base64", raw: "!!!.???.###"},
		{name: "garbage", raw: "not-a-token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := token.Decode(tc.raw)
			require.ErrorIs(t, err, errs.ErrMalformedToken)
		})
	}
}

func TestIsLive(t *testing.T) {
	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return fixedNow }
	defer func() { token.NowTimeFunc = time.Now }()

	future := signToken(t, jwtlib.MapClaims{"user_id": float64(1), "exp": fixedNow.Add(time.Hour).Unix()})
	past := signToken(t, jwtlib.MapClaims{"user_id": float64(1), "exp": fixedNow.Add(-time.Hour).Unix()})
	noExp := signToken(t, jwtlib.MapClaims{"user_id": float64(1)})

	require.True(t, token.IsLive(future))
	require.False(t, token.IsLive(past))
	require.False(t, token.IsLive(noExp))
	require.False(t, token.IsLive(""))
	require.False(t, token.IsLive("garbage"))
}
