package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingClaims is returned when a token verifies but lacks required claims.
var ErrMissingClaims = errors.New("token is missing required claims")

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	Email       string `json:"email"`
	IsConfirmed bool   `json:"isConfirmed"`
	jwt.RegisteredClaims
}

// ActivationClaims are the claims carried by an account activation token.
type ActivationClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for the user and returns it with its expiry.
func GenerateSessionToken(userID, email string, isConfirmed bool, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiryDuration)
	claims := SessionClaims{
		Email:       email,
		IsConfirmed: isConfirmed,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken parses a session token, validating its signature and standard claims.
func ParseSessionToken(tokenString string, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parseHMAC(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateActivationToken signs an activation token binding userID to email.
func GenerateActivationToken(userID, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ActivationClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseActivationToken verifies an activation token and returns its claims.
// Malformed, tampered, expired or claim-less tokens are rejected.
func ParseActivationToken(tokenString string, secretKey string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := parseHMAC(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.Email == "" {
		return nil, ErrMissingClaims
	}
	return claims, nil
}

func parseHMAC(tokenString, secretKey string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}
