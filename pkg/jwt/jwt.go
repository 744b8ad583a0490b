package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token: el access token viaja en el header Authorization,
// el refresh token en una cookie HttpOnly.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role permite que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Role      string `json:"role,omitempty"` // "farm_manager" | "employee"
	TokenType string `json:"typ"`
}

// Generate genera un access token firmado con userID y role.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, role, TokenTypeAccess, issuer, time.Duration(expMinutes)*time.Minute)
}

// GenerateRefresh genera un refresh token de larga duración (sin rol: el rol se relee de la DB al refrescar).
func GenerateRefresh(secret, userID, issuer string, expHours int) (string, error) {
	return sign(secret, userID, "", TokenTypeRefresh, issuer, time.Duration(expHours)*time.Hour)
}

// Parse valida un access token y devuelve userID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es un refresh token.
func Parse(secret, tokenString string) (userID, role string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != TokenTypeAccess {
		return "", "", fmt.Errorf("jwt: se esperaba un access token")
	}
	return claims.UserID, claims.Role, nil
}

// ParseRefresh valida un refresh token y devuelve el userID.
func ParseRefresh(secret, tokenString string) (string, error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", fmt.Errorf("jwt: se esperaba un refresh token")
	}
	return claims.UserID, nil
}

func sign(secret, userID, role, tokenType, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
