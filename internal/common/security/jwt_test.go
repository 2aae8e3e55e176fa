package security

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAccessSecret  = []byte("access-secret-for-tests")
	testRefreshSecret = []byte("refresh-secret-for-tests")
)

func newTestTokens(accessTTL, refreshTTL time.Duration) *Tokens {
	return NewTokens(testAccessSecret, testRefreshSecret, accessTTL, refreshTTL)
}

func parseWithSecret(t *testing.T, tokenString string, secret []byte) (jwt.MapClaims, error) {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	return token.Claims.(jwt.MapClaims), nil
}

func TestAccessToken_RoundTrip(t *testing.T) {
	tokens := newTestTokens(15*time.Minute, 7*24*time.Hour)
	issuedAt := time.Now()

	tok, err := tokens.GenerateAccessToken("user-123", "user")
	require.NoError(t, err)

	claims, err := parseWithSecret(t, tok, testAccessSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "user", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, issuedAt.Add(15*time.Minute), exp.Time, 2*time.Second)
}

func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	tokens := newTestTokens(15*time.Minute, 7*24*time.Hour)

	accessTok, err := tokens.GenerateAccessToken("user-123", "user")
	require.NoError(t, err)
	refreshTok, _, err := tokens.GenerateRefreshToken("user-123", "user")
	require.NoError(t, err)

	// An access token must never parse as a refresh token, nor vice versa.
	_, err = tokens.ParseRefreshToken(accessTok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = parseWithSecret(t, refreshTok, testAccessSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseRefreshToken_RoundTrip(t *testing.T) {
	tokens := newTestTokens(15*time.Minute, 7*24*time.Hour)

	tok, expiresAt, err := tokens.GenerateRefreshToken("user-456", "admin")
	require.NoError(t, err)

	claims, err := tokens.ParseRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestParseRefreshToken_Expired(t *testing.T) {
	tokens := newTestTokens(15*time.Minute, -time.Minute)

	tok, _, err := tokens.GenerateRefreshToken("user-456", "user")
	require.NoError(t, err)

	_, err = tokens.ParseRefreshToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRefreshToken_Malformed(t *testing.T) {
	tokens := newTestTokens(15*time.Minute, 7*24*time.Hour)

	_, err := tokens.ParseRefreshToken("not.a.jwt")
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)

	_, err = tokens.ParseRefreshToken("two-segments.only")
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestParseRefreshToken_TamperedPayload(t *testing.T) {
	tokens := newTestTokens(15*time.Minute, 7*24*time.Hour)

	tok, _, err := tokens.GenerateRefreshToken("user-456", "user")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &claims))
	claims["role"] = "admin" // privilege escalation attempt
	altered, err := json.Marshal(claims)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(altered)

	_, err = tokens.ParseRefreshToken(strings.Join(parts, "."))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestReissueRefreshToken_PreservesExpiry(t *testing.T) {
	tokens := newTestTokens(15*time.Minute, 7*24*time.Hour)

	tok, expiresAt, err := tokens.GenerateRefreshToken("user-789", "user")
	require.NoError(t, err)

	claims, err := tokens.ParseRefreshToken(tok)
	require.NoError(t, err)

	rotated, err := tokens.ReissueRefreshToken(claims)
	require.NoError(t, err)
	assert.NotEqual(t, tok, rotated)

	rotatedClaims, err := tokens.ParseRefreshToken(rotated)
	require.NoError(t, err)
	assert.Equal(t, "user-789", rotatedClaims.UserID)

	// The session ceiling must never move, no matter how often the token
	// rotates. Unix truncation makes the comparison exact.
	assert.Equal(t, expiresAt.Unix(), rotatedClaims.ExpiresAt.Unix())
}

func TestGetClaimHelpers(t *testing.T) {
	id, err := GetUserIDFromClaims(jwt.MapClaims{"user_id": "u1", "role": "user"})
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	_, err = GetUserIDFromClaims(jwt.MapClaims{"user_id": 42})
	assert.ErrorIs(t, err, ErrInvalidTokenClaims)

	_, err = GetUserRoleFromClaims(jwt.MapClaims{})
	assert.ErrorIs(t, err, ErrInvalidTokenClaims)
}
