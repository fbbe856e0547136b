package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// IdentityClaims содержит утверждение о личности вызывающего.
// Слой аутентификации отключен: токен принимается на веру после
// проверки подписи, без обращения к хранилищу пользователей.
type IdentityClaims struct {
	UserID     uuid.UUID `json:"user_id"`
	Role       string    `json:"role"`
	CategoryID uuid.UUID `json:"category,omitempty"`
	jwt.RegisteredClaims
}

// JWTService предоставляет методы для работы с токенами личности
type JWTService struct {
	secret        []byte
	expirationHrs int
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string, expirationHrs int) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{
		secret:        []byte(secret),
		expirationHrs: expirationHrs,
	}, nil
}

// GenerateToken создает подписанный токен личности
func (s *JWTService) GenerateToken(userID uuid.UUID, role string, categoryID uuid.UUID) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		UserID:     userID,
		Role:       role,
		CategoryID: categoryID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expirationHrs) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken проверяет подпись и возвращает утверждение о личности
func (s *JWTService) ParseToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
