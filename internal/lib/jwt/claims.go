// Package jwt реализует генерацию и парсинг пары JWT токенов (access + refresh)
// с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов с email и ролью.
// MakerImpl — конкретная реализация с секретным ключом и временами жизни.
package jwt

import (
	"time"
)

// Типы токенов в claim token_type.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateAccessToken создает короткоживущий access-токен.
	GenerateAccessToken(email, role, userUID string) (string, error)
	// GenerateRefreshToken создает refresh-токен с уникальным jti
	// для поддержки списка отозванных токенов.
	GenerateRefreshToken(email, role, userUID string) (string, error)
	// ParseToken возвращает *CustomClaims, если токен корректен.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и отдельных TTL для access и refresh токенов.
type MakerImpl struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl.
func NewJWTMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
