package register

import (
	"context"

	"github.com/magabrotheeeer/education-platform/internal/models"
	authservice "github.com/magabrotheeeer/education-platform/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики регистрации пользователя.
type Service interface {
	Register(ctx context.Context, req models.DummyRegister) (string, *authservice.TokenPair, error)
}
