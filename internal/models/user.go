// Package models содержит доменные структуры образовательной платформы,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей. Роль хранится явно и попадает в claims JWT,
// чтобы не обращаться к хранилищу на каждый запрос.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User представляет зарегистрированного пользователя платформы.
// Идентификация выполняется по email, отдельного username нет.
type User struct {
	UID          string     `json:"uid"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	City         *string    `json:"city,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса
// до их валидации и создания пользователя.
type DummyRegister struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`
	City      string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// DummyLogin используется для приёма учетных данных при входе.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyRefresh используется для приёма refresh-токена при обновлении пары токенов.
type DummyRefresh struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// DummyUserUpdate используется для обновления профиля пользователя.
type DummyUserUpdate struct {
	Phone string `json:"phone,omitempty" validate:"omitempty,max=20"`
	City  string `json:"city,omitempty" validate:"omitempty,max=100"`
}
