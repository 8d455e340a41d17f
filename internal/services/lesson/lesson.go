// Package services содержит бизнес-логику управления уроками.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/education-platform/internal/lib/access"
	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
)

// Ошибки бизнес-логики уроков.
var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrForbidden      = errors.New("access denied")
)

// LessonRepository определяет методы для работы с уроками в хранилище.
type LessonRepository interface {
	// CreateLesson добавляет новый урок и возвращает его ID.
	CreateLesson(ctx context.Context, lesson models.Lesson) (int, error)
	// ReadLesson возвращает урок по ID.
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
	// UpdateLesson обновляет данные урока по ID.
	UpdateLesson(ctx context.Context, lesson models.Lesson, id int) (int, error)
	// RemoveLesson удаляет урок по ID.
	RemoveLesson(ctx context.Context, id int) (int, error)
	// ListLessonsByOwner возвращает уроки владельца с пагинацией.
	ListLessonsByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Lesson, error)
	// ListAllLessons возвращает все уроки с пагинацией.
	ListAllLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error)
	// CountLessonsByOwner подсчитывает уроки владельца.
	CountLessonsByOwner(ctx context.Context, ownerUID string) (int, error)
	// CountAllLessons подсчитывает все уроки.
	CountAllLessons(ctx context.Context) (int, error)
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
}

// Publisher публикует события уведомлений в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// LessonService реализует бизнес-логику работы с уроками.
type LessonService struct {
	repo      LessonRepository
	publisher Publisher
	log       *slog.Logger
}

// NewLessonService создает новый экземпляр LessonService.
func NewLessonService(repo LessonRepository, publisher Publisher, log *slog.Logger) *LessonService {
	return &LessonService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Create создает новый урок в существующем курсе. Модераторам
// создание запрещено.
func (s *LessonService) Create(ctx context.Context, ownerUID, role string, req models.DummyLesson) (int, error) {
	if !access.IsNotModerator(role) {
		return 0, ErrForbidden
	}

	if _, err := s.repo.ReadCourse(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCourseNotFound
		}
		return 0, err
	}

	lesson := models.Lesson{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: optional(req.Description),
		VideoLink:   optional(req.VideoLink),
		OwnerUID:    &ownerUID,
	}
	id, err := s.repo.CreateLesson(ctx, lesson)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new lesson", slog.Int("id", id), slog.Int("course_id", req.CourseID))
	return id, nil
}

// Read возвращает урок по ID.
func (s *LessonService) Read(ctx context.Context, id int) (*models.Lesson, error) {
	lesson, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

// Update обновляет урок. Изменять урок может владелец, модератор или
// администратор. При фактических изменениях подписчики родительского
// курса получают уведомление.
func (s *LessonService) Update(ctx context.Context, id int, userUID, role string, req models.DummyLesson) (int, error) {
	old, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrLessonNotFound
		}
		return 0, err
	}
	if !access.IsOwnerOrModerator(userUID, role, old.OwnerUID) {
		return 0, ErrForbidden
	}

	lesson := models.Lesson{
		CourseID:    old.CourseID,
		Title:       req.Title,
		Description: optional(req.Description),
		VideoLink:   optional(req.VideoLink),
	}
	changes := describeChanges(old, &lesson)

	res, err := s.repo.UpdateLesson(ctx, lesson, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated lesson in storage", slog.Int("id", id))

	if changes != "" {
		course, err := s.repo.ReadCourse(ctx, old.CourseID)
		if err != nil {
			s.log.Warn("failed to read parent course",
				slog.Int("course_id", old.CourseID), slog.Any("err", err))
			return res, nil
		}
		event := models.CourseUpdatedEvent{
			CourseID:    course.ID,
			CourseTitle: course.Title,
			Changes:     fmt.Sprintf("Урок %q:\n%s", old.Title, changes),
		}
		if err := s.publisher.Publish(rabbitmq.RoutingKeyCourseUpdated, event); err != nil {
			s.log.Warn("failed to publish lesson updated event",
				slog.Int("id", id), slog.Any("err", err))
		}
	}
	return res, nil
}

// Remove удаляет урок. Удалять урок может владелец или администратор,
// модераторам удаление запрещено.
func (s *LessonService) Remove(ctx context.Context, id int, userUID, role string) (int, error) {
	lesson, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrLessonNotFound
		}
		return 0, err
	}
	if !access.IsOwner(userUID, lesson.OwnerUID) && !access.IsAdmin(role) {
		return 0, ErrForbidden
	}
	return s.repo.RemoveLesson(ctx, id)
}

// List возвращает страницу уроков: обычный пользователь видит только свои,
// модератор и администратор — все.
func (s *LessonService) List(ctx context.Context, userUID, role string, limit, offset int) ([]*models.Lesson, int, error) {
	if access.SeesAll(role) {
		lessons, err := s.repo.ListAllLessons(ctx, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		count, err := s.repo.CountAllLessons(ctx)
		if err != nil {
			return nil, 0, err
		}
		return lessons, count, nil
	}

	lessons, err := s.repo.ListLessonsByOwner(ctx, userUID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountLessonsByOwner(ctx, userUID)
	if err != nil {
		return nil, 0, err
	}
	return lessons, count, nil
}

// describeChanges собирает описание изменений урока для письма подписчикам.
func describeChanges(old, updated *models.Lesson) string {
	var changes []string
	if old.Title != updated.Title {
		changes = append(changes, fmt.Sprintf("Название: %q → %q", old.Title, updated.Title))
	}
	if derefOrEmpty(old.Description) != derefOrEmpty(updated.Description) {
		changes = append(changes, "Обновлено описание")
	}
	if derefOrEmpty(old.VideoLink) != derefOrEmpty(updated.VideoLink) {
		changes = append(changes, "Обновлена ссылка на видео")
	}
	return strings.Join(changes, "\n")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
