package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokens are long-lived; the mobile client has no refresh flow
const tokenTTL = 30 * 24 * time.Hour

// GenerateJWT mints an HS256 token carrying the user's id.
func GenerateJWT(secret string, userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseUserID validates a token and extracts the userId claim.
func ParseUserID(secret, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}

	// numeric claims come back as float64 after JSON decoding
	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("userId claim missing")
	}
	return uint(id), nil
}
