package utils

import (
	"errors"
	"time"

	"matero/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "matero-dev"
	}
	return []byte(secret)
}

// Identity holds the authenticated user claims the assistant cares about.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// GenerateToken creates a signed JWT for the given identity, expiring after
// the specified duration.
func GenerateToken(id Identity, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      id.UserID,
		"username": id.Username,
		"role":     id.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// IdentityFromToken extracts the identity claims from a valid JWT token string.
func IdentityFromToken(tokenString string) (Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, errors.New("token does not contain a valid 'sub' claim")
	}

	id := Identity{UserID: sub}
	if v, ok := claims["username"].(string); ok {
		id.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		id.Role = v
	}
	return id, nil
}
