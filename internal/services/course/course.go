// Package services содержит бизнес-логику управления курсами.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/education-platform/internal/lib/access"
	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
)

// Ошибки бизнес-логики курсов.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrForbidden      = errors.New("access denied")
)

const descriptionPreviewLen = 50

// CourseRepository определяет методы для работы с курсами в хранилище.
type CourseRepository interface {
	// CreateCourse добавляет новый курс и возвращает его ID.
	CreateCourse(ctx context.Context, course models.Course) (int, error)
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// UpdateCourse обновляет данные курса по ID.
	UpdateCourse(ctx context.Context, course models.Course, id int) (int, error)
	// RemoveCourse удаляет курс по ID.
	RemoveCourse(ctx context.Context, id int) (int, error)
	// ListCoursesByOwner возвращает курсы владельца с пагинацией.
	ListCoursesByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Course, error)
	// ListAllCourses возвращает все курсы с пагинацией.
	ListAllCourses(ctx context.Context, limit, offset int) ([]*models.Course, error)
	// CountCoursesByOwner подсчитывает курсы владельца.
	CountCoursesByOwner(ctx context.Context, ownerUID string) (int, error)
	// CountAllCourses подсчитывает все курсы.
	CountAllCourses(ctx context.Context) (int, error)
	// ListLessonsByCourse возвращает уроки курса.
	ListLessonsByCourse(ctx context.Context, courseID int) ([]*models.Lesson, error)
}

// PaymentProvider создает товары и цены у платежного провайдера.
type PaymentProvider interface {
	CreateProduct(ctx context.Context, name, description string) (*paymentprovider.Product, error)
	CreatePrice(ctx context.Context, productID string, amount float64, currency string) (*paymentprovider.Price, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Publisher публикует события уведомлений в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// CourseService реализует бизнес-логику работы с курсами: CRUD,
// кеширование, публикацию событий об изменениях и создание товаров
// у платежного провайдера.
type CourseService struct {
	repo      CourseRepository
	provider  PaymentProvider
	cache     Cache
	publisher Publisher
	log       *slog.Logger
}

// NewCourseService создает новый экземпляр CourseService.
func NewCourseService(repo CourseRepository, provider PaymentProvider, cache Cache,
	publisher Publisher, log *slog.Logger) *CourseService {
	return &CourseService{
		repo:      repo,
		provider:  provider,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Create создает новый курс. Модераторам создание запрещено.
// Для платных курсов регистрирует товар и цену у платежного провайдера.
func (s *CourseService) Create(ctx context.Context, ownerUID, role string, req models.DummyCourse) (int, error) {
	if !access.IsNotModerator(role) {
		return 0, ErrForbidden
	}

	course := models.Course{
		Title:       req.Title,
		Description: optional(req.Description),
		Price:       req.Price,
		OwnerUID:    &ownerUID,
	}

	if req.Price > 0 && s.provider != nil {
		productID, priceID, err := s.provisionPrice(ctx, req.Title, req.Description, req.Price, nil)
		if err != nil {
			s.log.Warn("failed to register course with payment provider",
				slog.String("title", req.Title), slog.Any("err", err))
		} else {
			course.StripeProductID = productID
			course.StripePriceID = priceID
		}
	}

	id, err := s.repo.CreateCourse(ctx, course)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new course", slog.Int("id", id))

	cacheKey := fmt.Sprintf("course:%d", id)
	course.ID = id
	if err := s.cache.Set(cacheKey, course, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return id, nil
}

// Read возвращает курс вместе с его уроками.
func (s *CourseService) Read(ctx context.Context, id int) (*models.CourseWithLessons, error) {
	var course *models.Course
	cacheKey := fmt.Sprintf("course:%d", id)
	found, err := s.cache.Get(cacheKey, &course)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), slog.Any("err", err))
		found = false
	}
	if !found {
		course, err = s.repo.ReadCourse(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrCourseNotFound
			}
			return nil, err
		}
		if err := s.cache.Set(cacheKey, course, time.Hour); err != nil {
			s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	lessons, err := s.repo.ListLessonsByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CourseWithLessons{
		Course:      *course,
		Lessons:     lessons,
		LessonCount: len(lessons),
	}, nil
}

// Update обновляет курс. Изменять курс может владелец, модератор или
// администратор. При фактических изменениях публикуется событие для
// рассылки подписчикам; при изменении цены создается новая цена у
// платежного провайдера.
func (s *CourseService) Update(ctx context.Context, id int, userUID, role string, req models.DummyCourse) (int, error) {
	old, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCourseNotFound
		}
		return 0, err
	}
	if !access.IsOwnerOrModerator(userUID, role, old.OwnerUID) {
		return 0, ErrForbidden
	}

	course := models.Course{
		Title:           req.Title,
		Description:     optional(req.Description),
		Price:           req.Price,
		StripeProductID: old.StripeProductID,
		StripePriceID:   old.StripePriceID,
	}
	if req.Price != old.Price {
		if req.Price > 0 && s.provider != nil {
			productID, priceID, err := s.provisionPrice(ctx, req.Title, req.Description, req.Price, old.StripeProductID)
			if err != nil {
				s.log.Warn("failed to update course price with payment provider",
					slog.Int("id", id), slog.Any("err", err))
			} else {
				course.StripeProductID = productID
				course.StripePriceID = priceID
			}
		} else {
			course.StripePriceID = nil
		}
	}

	changes := describeChanges(old, &course)
	res, err := s.repo.UpdateCourse(ctx, course, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated course in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("course:%d", id)
	course.ID = id
	course.OwnerUID = old.OwnerUID
	if err := s.cache.Set(cacheKey, course, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}

	if changes != "" {
		event := models.CourseUpdatedEvent{
			CourseID:    id,
			CourseTitle: course.Title,
			Changes:     changes,
		}
		if err := s.publisher.Publish(rabbitmq.RoutingKeyCourseUpdated, event); err != nil {
			s.log.Warn("failed to publish course updated event",
				slog.Int("id", id), slog.Any("err", err))
		}
	}
	return res, nil
}

// Remove удаляет курс. Удалять курс может владелец или администратор,
// модераторам удаление запрещено.
func (s *CourseService) Remove(ctx context.Context, id int, userUID, role string) (int, error) {
	course, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCourseNotFound
		}
		return 0, err
	}
	if !access.IsOwner(userUID, course.OwnerUID) && !access.IsAdmin(role) {
		return 0, ErrForbidden
	}

	cacheKey := fmt.Sprintf("course:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveCourse(ctx, id)
}

// List возвращает страницу курсов: обычный пользователь видит только свои,
// модератор и администратор — все. Вторым значением возвращается общее
// количество для пагинации.
func (s *CourseService) List(ctx context.Context, userUID, role string, limit, offset int) ([]*models.Course, int, error) {
	if access.SeesAll(role) {
		courses, err := s.repo.ListAllCourses(ctx, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		count, err := s.repo.CountAllCourses(ctx)
		if err != nil {
			return nil, 0, err
		}
		return courses, count, nil
	}

	courses, err := s.repo.ListCoursesByOwner(ctx, userUID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountCoursesByOwner(ctx, userUID)
	if err != nil {
		return nil, 0, err
	}
	return courses, count, nil
}

// Lessons возвращает уроки курса.
func (s *CourseService) Lessons(ctx context.Context, courseID int) ([]*models.Lesson, error) {
	if _, err := s.repo.ReadCourse(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return s.repo.ListLessonsByCourse(ctx, courseID)
}

func (s *CourseService) provisionPrice(ctx context.Context, title, description string,
	amount float64, productID *string) (*string, *string, error) {
	if productID == nil {
		product, err := s.provider.CreateProduct(ctx, title, description)
		if err != nil {
			return nil, nil, err
		}
		productID = &product.ID
	}
	price, err := s.provider.CreatePrice(ctx, *productID, amount, "usd")
	if err != nil {
		return nil, nil, err
	}
	return productID, &price.ID, nil
}

// describeChanges собирает человекочитаемое описание изменений курса
// для письма подписчикам. Пустая строка означает отсутствие изменений.
func describeChanges(old, updated *models.Course) string {
	var changes []string
	if old.Title != updated.Title {
		changes = append(changes, fmt.Sprintf("Название: %q → %q", old.Title, updated.Title))
	}
	if derefOrEmpty(old.Description) != derefOrEmpty(updated.Description) {
		changes = append(changes, fmt.Sprintf("Описание: %q → %q",
			preview(derefOrEmpty(old.Description)), preview(derefOrEmpty(updated.Description))))
	}
	if old.Price != updated.Price {
		changes = append(changes, fmt.Sprintf("Цена: %.2f → %.2f", old.Price, updated.Price))
	}
	if derefOrEmpty(old.StripePriceID) != derefOrEmpty(updated.StripePriceID) {
		changes = append(changes, "Обновлена цена у платежного провайдера")
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

func preview(s string) string {
	if len(s) > descriptionPreviewLen {
		return s[:descriptionPreviewLen] + "..."
	}
	return s
}
