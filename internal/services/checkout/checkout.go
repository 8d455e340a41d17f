// Package services содержит бизнес-логику покупки курса через
// платежного провайдера.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/paymentprovider"
)

// Ошибки бизнес-логики оплаты.
var (
	ErrCourseNotFound = errors.New("course not found")
	// ErrNoPrice возвращается для курсов без зарегистрированной цены:
	// бесплатных или не синхронизированных с провайдером.
	ErrNoPrice = errors.New("course has no registered price")
)

// CourseReader возвращает курсы из хранилища.
type CourseReader interface {
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
}

// SessionCreator создает платежные сессии у провайдера.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params paymentprovider.CreateCheckoutSessionParams) (*paymentprovider.CheckoutSession, error)
}

// CheckoutService создает платежную сессию для покупки курса.
type CheckoutService struct {
	repo       CourseReader
	provider   SessionCreator
	successURL string
	cancelURL  string
	log        *slog.Logger
}

// NewCheckoutService создает новый экземпляр CheckoutService.
func NewCheckoutService(repo CourseReader, provider SessionCreator,
	successURL, cancelURL string, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:       repo,
		provider:   provider,
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        log,
	}
}

// CreateSession создает сессию оплаты курса и возвращает её вместе с URL
// для перенаправления пользователя. Пустой idempotencyKey заменяется
// сгенерированным, чтобы повтор запроса не создал вторую сессию.
func (s *CheckoutService) CreateSession(ctx context.Context, courseID int, userUID,
	idempotencyKey string) (*paymentprovider.CheckoutSession, error) {
	course, err := s.repo.ReadCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if course.StripePriceID == nil {
		return nil, ErrNoPrice
	}

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CreateCheckoutSessionParams{
		PriceID:    *course.StripePriceID,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Metadata: map[string]string{
			"course_id": strconv.Itoa(courseID),
			"user_uid":  userUID,
		},
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created checkout session",
		slog.Int("course_id", courseID), slog.String("session_id", session.ID))
	return session, nil
}
