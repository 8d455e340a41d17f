package refresh

import (
	"context"

	authservice "github.com/magabrotheeeer/education-platform/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики обновления пары токенов.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (*authservice.TokenPair, error)
}
