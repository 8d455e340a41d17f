package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"`      // Email пользователя
	Role                 string `json:"role"`       // Роль пользователя
	UserUID              string `json:"user_uid"`   // Уникальный идентификатор пользователя
	TokenType            string `json:"token_type"` // access или refresh
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateAccessToken создает access-токен с заданными email, role и uid,
// подписывая его секретным ключом. Время жизни определяется accessTTL.
func (j *MakerImpl) GenerateAccessToken(email, role, userUID string) (string, error) {
	return j.generate(email, role, userUID, TokenTypeAccess, j.accessTTL)
}

// GenerateRefreshToken создает refresh-токен. Каждый refresh-токен получает
// уникальный jti, по которому его можно отозвать через список отозванных.
func (j *MakerImpl) GenerateRefreshToken(email, role, userUID string) (string, error) {
	return j.generate(email, role, userUID, TokenTypeRefresh, j.refreshTTL)
}

func (j *MakerImpl) generate(email, role, userUID, tokenType string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		Email:     email,
		Role:      role,
		UserUID:   userUID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
