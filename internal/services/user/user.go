// Package services содержит бизнес-логику управления пользователями.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/education-platform/internal/lib/access"
	"github.com/magabrotheeeer/education-platform/internal/models"
)

// Ошибки бизнес-логики пользователей.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("access denied")
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ListUsers возвращает пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// CountUsers подсчитывает пользователей.
	CountUsers(ctx context.Context) (int, error)
	// UpdateUserProfile обновляет телефон и город пользователя.
	UpdateUserProfile(ctx context.Context, userUID string, phone, city *string) (int, error)
	// RemoveUser удаляет пользователя по UID.
	RemoveUser(ctx context.Context, userUID string) (int, error)
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Me возвращает профиль текущего пользователя.
func (s *UserService) Me(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List возвращает страницу пользователей. Список доступен только
// администратору.
func (s *UserService) List(ctx context.Context, role string, limit, offset int) ([]*models.User, int, error) {
	if !access.IsAdmin(role) {
		return nil, 0, ErrForbidden
	}
	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// Update обновляет профиль пользователя. Пользователь может изменять
// только свой профиль, администратор — любой.
func (s *UserService) Update(ctx context.Context, targetUID, actorUID, role string, req models.DummyUserUpdate) (*models.User, error) {
	if targetUID != actorUID && !access.IsAdmin(role) {
		return nil, ErrForbidden
	}

	if _, err := s.repo.GetUser(ctx, targetUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.repo.UpdateUserProfile(ctx, targetUID, optional(req.Phone), optional(req.City)); err != nil {
		return nil, err
	}
	s.log.Info("updated user profile", slog.String("uid", targetUID))
	return s.repo.GetUser(ctx, targetUID)
}

// Remove удаляет пользователя. Операция доступна только администратору.
// Курсы и уроки удаленного пользователя сохраняются без владельца.
func (s *UserService) Remove(ctx context.Context, targetUID, role string) (int, error) {
	if !access.IsAdmin(role) {
		return 0, ErrForbidden
	}

	count, err := s.repo.RemoveUser(ctx, targetUID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrUserNotFound
	}
	s.log.Info("removed user", slog.String("uid", targetUID))
	return count, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
