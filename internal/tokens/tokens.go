package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was well-formed and correctly signed but past exp.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers malformed tokens and signature mismatches.
	ErrInvalid = errors.New("invalid token")
)

// AccessClaims identify the caller for a single request window.
type AccessClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the user id; refresh tokens mint new access tokens
// and nothing else.
type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed HS256 access token for the user.
func GenerateAccessToken(secret, userID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GenerateRefreshToken creates a signed HS256 refresh token for the user.
func GenerateRefreshToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAccessToken parses and verifies an access token, returning its claims
// or one of ErrExpired / ErrInvalid.
func VerifyAccessToken(secret, raw string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := verify(secret, raw, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// VerifyRefreshToken parses and verifies a refresh token, returning its claims
// or one of ErrExpired / ErrInvalid.
func VerifyRefreshToken(secret, raw string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := verify(secret, raw, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func verify(secret, raw string, claims jwt.Claims) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalid
	}
	if !tok.Valid {
		return ErrInvalid
	}
	return nil
}
