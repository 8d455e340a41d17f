// Package services содержит бизнес-логику подписок на курсы.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/education-platform/internal/lib/access"
	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
)

// Ошибки бизнес-логики подписок.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrForbidden      = errors.New("access denied")
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetSubscription возвращает подписку пары (user_uid, course_id).
	GetSubscription(ctx context.Context, userUID string, courseID int) (*models.Subscription, error)
	// ActivateSubscription создает подписку или реактивирует существующую.
	ActivateSubscription(ctx context.Context, userUID string, courseID int) (int, error)
	// DeactivateSubscription снимает флаг активности подписки.
	DeactivateSubscription(ctx context.Context, userUID string, courseID int) (int, error)
	// ListActiveSubscribers возвращает активных подписчиков курса.
	ListActiveSubscribers(ctx context.Context, courseID int) ([]*models.SubscriberInfo, error)
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
}

// Publisher публикует события уведомлений в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// SubscriptionService реализует переключение подписки и список подписчиков.
type SubscriptionService struct {
	repo      SubscriptionRepository
	publisher Publisher
	log       *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, publisher Publisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Toggle переключает подписку пользователя на курс: активная подписка
// деактивируется, отсутствующая или неактивная — активируется.
// Возвращает итоговое состояние подписки.
func (s *SubscriptionService) Toggle(ctx context.Context, userUID, email string, courseID int) (bool, error) {
	course, err := s.repo.ReadCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrCourseNotFound
		}
		return false, err
	}

	sub, err := s.repo.GetSubscription(ctx, userUID, courseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	if sub != nil && sub.IsActive {
		if _, err := s.repo.DeactivateSubscription(ctx, userUID, courseID); err != nil {
			return false, err
		}
		s.log.Info("subscription deactivated",
			slog.String("user_uid", userUID), slog.Int("course_id", courseID))
		return false, nil
	}

	if _, err := s.repo.ActivateSubscription(ctx, userUID, courseID); err != nil {
		return false, err
	}
	s.log.Info("subscription activated",
		slog.String("user_uid", userUID), slog.Int("course_id", courseID))

	event := models.CourseWelcomeEvent{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Email:       email,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyCourseWelcome, event); err != nil {
		s.log.Warn("failed to publish welcome event",
			slog.Int("course_id", courseID), slog.Any("err", err))
	}
	return true, nil
}

// Subscribers возвращает активных подписчиков курса. Список доступен
// владельцу курса и администратору.
func (s *SubscriptionService) Subscribers(ctx context.Context, courseID int, userUID, role string) ([]*models.SubscriberInfo, error) {
	const op = "services.Subscribers"
	course, err := s.repo.ReadCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !access.IsOwner(userUID, course.OwnerUID) && !access.IsAdmin(role) {
		return nil, ErrForbidden
	}
	return s.repo.ListActiveSubscribers(ctx, courseID)
}
