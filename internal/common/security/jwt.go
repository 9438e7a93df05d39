package security

import (
	"errors"
	"time"

	"cmcs_backend/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

func GenerateToken(userID string, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"roles":   roles,
		"exp":     time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

// GetUserRolesFromClaims resolves the caller's full role set. Role
// membership in CMCS is non-exclusive, so the claim is a list.
func GetUserRolesFromClaims(claims jwt.MapClaims) ([]string, error) {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil, errors.New("roles claim is missing or not a list")
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		role, ok := r.(string)
		if !ok {
			return nil, errors.New("roles claim contains a non-string entry")
		}
		roles = append(roles, role)
	}
	return roles, nil
}
