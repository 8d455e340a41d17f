package login

import (
	"context"

	authservice "github.com/magabrotheeeer/education-platform/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики входа пользователя.
type Service interface {
	Login(ctx context.Context, email, password string) (*authservice.TokenPair, error)
}
