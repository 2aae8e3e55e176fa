package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidTokenClaims = errors.New("token claims are missing or malformed")

// Claims is the identity carried by both token kinds. Tokens are signed, not
// encrypted, so nothing secret goes in here.
type Claims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// Tokens signs and verifies the access/refresh token pair. The two kinds use
// distinct secrets: compromise of one must not allow forging the other.
type Tokens struct {
	auth          *jwtauth.JWTAuth
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokens(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		auth:          jwtauth.New("HS256", accessSecret, nil),
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Auth exposes the access-token verifier for the jwtauth middleware.
func (t *Tokens) Auth() *jwtauth.JWTAuth {
	return t.auth
}

func (t *Tokens) GenerateAccessToken(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     now.Add(t.accessTTL).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// GenerateRefreshToken mints a fresh refresh token and returns it with its
// absolute expiry, which rotation later preserves.
func (t *Tokens) GenerateRefreshToken(userID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.refreshTTL)
	tokenString, err := t.signRefresh(userID, role, expiresAt, now)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ReissueRefreshToken re-signs a refresh token for the same subject with the
// original expiry kept verbatim. Every rotation gets a fresh signature and
// iat, but the session ceiling set at login never moves.
func (t *Tokens) ReissueRefreshToken(claims *Claims) (string, error) {
	return t.signRefresh(claims.UserID, claims.Role, claims.ExpiresAt, time.Now())
}

func (t *Tokens) signRefresh(userID, role string, expiresAt, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     expiresAt.Unix(),
		"iat":     issuedAt.Unix(),
		// jti makes every rotation produce a distinct token even within
		// the same second.
		"jti": uuid.NewString(),
	})
	return token.SignedString(t.refreshSecret)
}

// ParseRefreshToken verifies a refresh token's signature and expiry and
// returns its claims. Failures surface the library's sentinel errors
// (jwt.ErrTokenMalformed, jwt.ErrTokenSignatureInvalid, jwt.ErrTokenExpired)
// so callers can log the cause while responding uniformly.
func (t *Tokens) ParseRefreshToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.refreshSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidTokenClaims
	}

	userID, err := GetUserIDFromClaims(mapClaims)
	if err != nil {
		return nil, err
	}
	role, err := GetUserRoleFromClaims(mapClaims)
	if err != nil {
		return nil, err
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidTokenClaims
	}

	return &Claims{UserID: userID, Role: role, ExpiresAt: exp.Time}, nil
}

// Helper functions to extract claims, used in middleware and services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id claim is missing or not a string: %w", ErrInvalidTokenClaims)
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", fmt.Errorf("role claim is missing or not a string: %w", ErrInvalidTokenClaims)
	}
	return role, nil
}
