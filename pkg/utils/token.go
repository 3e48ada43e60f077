package utils

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateAccessToken issues an HS256 bearer token for API clients. Expiry is
// taken from ACCESS_TOKEN_MINUTES when set, otherwise the token does not expire.
func GenerateAccessToken(userID uuid.UUID, username string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", NewInternalError("JWT secret not set")
	}

	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"username": username,
	}
	if env := os.Getenv("ACCESS_TOKEN_MINUTES"); env != "" {
		if iv, err := strconv.Atoi(env); err == nil && iv > 0 {
			claims["exp"] = time.Now().Add(time.Duration(iv) * time.Minute).Unix()
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", NewInternalError("failed to sign access token")
	}
	return signed, nil
}

// ExtractUserIDFromHeader parses an Authorization header (Bearer <token>) and
// returns the user_id UUID from the JWT claims.
func ExtractUserIDFromHeader(authHeader string) (uuid.UUID, error) {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return uuid.Nil, NewAuthError("missing or invalid Authorization header")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return uuid.Nil, NewInternalError("JWT secret not set")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	if err != nil || !token.Valid {
		return uuid.Nil, NewAuthError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, NewAuthError("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, NewAuthError("invalid token payload")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, NewAuthError("invalid user id in token")
	}
	return userID, nil
}
