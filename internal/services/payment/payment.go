// Package services содержит бизнес-логику учета платежей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/education-platform/internal/lib/access"
	"github.com/magabrotheeeer/education-platform/internal/models"
)

// Ошибки бизнес-логики платежей.
var (
	// ErrInvalidReference возвращается, когда платеж не ссылается ровно
	// на один курс или урок.
	ErrInvalidReference = errors.New("payment must reference exactly one of course or lesson")
	ErrCourseNotFound   = errors.New("course not found")
	ErrLessonNotFound   = errors.New("lesson not found")
)

// PaymentRepository определяет методы для работы с платежами в хранилище.
type PaymentRepository interface {
	// CreatePayment добавляет новый платеж и возвращает его ID.
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	// ListPaymentsByUser возвращает платежи пользователя по фильтру.
	ListPaymentsByUser(ctx context.Context, userUID string, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error)
	// ListAllPayments возвращает все платежи по фильтру.
	ListAllPayments(ctx context.Context, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error)
	// CountPaymentsByUser подсчитывает платежи пользователя по фильтру.
	CountPaymentsByUser(ctx context.Context, userUID string, filter models.PaymentFilter) (int, error)
	// CountAllPayments подсчитывает все платежи по фильтру.
	CountAllPayments(ctx context.Context, filter models.PaymentFilter) (int, error)
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// ReadLesson возвращает урок по ID.
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
}

// PaymentService реализует бизнес-логику учета платежей.
type PaymentService struct {
	repo PaymentRepository
	log  *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, log *slog.Logger) *PaymentService {
	return &PaymentService{repo: repo, log: log}
}

// Create регистрирует платеж пользователя. Платеж должен ссылаться ровно
// на один существующий курс или урок.
func (s *PaymentService) Create(ctx context.Context, userUID string, req models.DummyPayment) (int, error) {
	if (req.PaidCourseID == nil) == (req.PaidLessonID == nil) {
		return 0, ErrInvalidReference
	}

	if req.PaidCourseID != nil {
		if _, err := s.repo.ReadCourse(ctx, *req.PaidCourseID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, ErrCourseNotFound
			}
			return 0, err
		}
	} else {
		if _, err := s.repo.ReadLesson(ctx, *req.PaidLessonID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, ErrLessonNotFound
			}
			return 0, err
		}
	}

	payment := models.Payment{
		UserUID:       userUID,
		PaidCourseID:  req.PaidCourseID,
		PaidLessonID:  req.PaidLessonID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	id, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new payment", slog.Int("id", id), slog.String("user_uid", userUID))
	return id, nil
}

// List возвращает страницу платежей по фильтру: обычный пользователь видит
// только свои, модератор и администратор — все.
func (s *PaymentService) List(ctx context.Context, userUID, role string, filter models.PaymentFilter,
	limit, offset int) ([]*models.Payment, int, error) {
	if access.SeesAll(role) {
		payments, err := s.repo.ListAllPayments(ctx, filter, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		count, err := s.repo.CountAllPayments(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		return payments, count, nil
	}

	payments, err := s.repo.ListPaymentsByUser(ctx, userUID, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountPaymentsByUser(ctx, userUID, filter)
	if err != nil {
		return nil, 0, err
	}
	return payments, count, nil
}
