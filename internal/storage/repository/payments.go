package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/education-platform/internal/models"
)

// CreatePayment вставляет новую запись об оплате и возвращает её ID.
// CHECK-ограничение таблицы отклонит запись, у которой заполнены
// одновременно обе ссылки или ни одной.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, paid_course_id, paid_lesson_id,
			      amount, payment_method)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.PaidCourseID, payment.PaidLessonID,
		payment.Amount, payment.PaymentMethod).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentsByUser возвращает платежи пользователя по фильтру с пагинацией.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userUID string, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"

	conditions, args := buildPaymentFilter(filter, []string{"user_uid = $1"}, []any{userUID})
	return s.queryPayments(ctx, op, conditions, filter.OrderBy, args, limit, offset)
}

// ListAllPayments возвращает платежи всех пользователей по фильтру с пагинацией.
func (s *Storage) ListAllPayments(ctx context.Context, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListAllPayments"

	conditions, args := buildPaymentFilter(filter, nil, nil)
	return s.queryPayments(ctx, op, conditions, filter.OrderBy, args, limit, offset)
}

// buildPaymentFilter собирает условия WHERE и аргументы запроса
// из непустых полей фильтра.
func buildPaymentFilter(filter models.PaymentFilter, conditions []string, args []any) ([]string, []any) {
	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.PaidCourseID != nil {
		add("paid_course_id = $%d", *filter.PaidCourseID)
	}
	if filter.PaidLessonID != nil {
		add("paid_lesson_id = $%d", *filter.PaidLessonID)
	}
	if filter.PaymentMethod != nil {
		add("payment_method = $%d", *filter.PaymentMethod)
	}
	if filter.DateFrom != nil {
		add("payment_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("payment_date <= $%d", *filter.DateTo)
	}
	if filter.AmountMin != nil {
		add("amount >= $%d", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		add("amount <= $%d", *filter.AmountMax)
	}
	return conditions, args
}

// orderClause транслирует значение фильтра в безопасное выражение ORDER BY.
func orderClause(orderBy string) string {
	switch orderBy {
	case "payment_date":
		return "payment_date"
	case "-payment_date":
		return "payment_date DESC"
	case "amount":
		return "amount"
	case "-amount":
		return "amount DESC"
	default:
		return "payment_date DESC"
	}
}

func (s *Storage) queryPayments(ctx context.Context, op string, conditions []string, orderBy string, args []any, limit, offset int) ([]*models.Payment, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, paid_course_id, paid_lesson_id, amount,
			      payment_method, payment_date
			  FROM payments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderClause(orderBy)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err = rows.Scan(&p.ID, &p.UserUID, &p.PaidCourseID, &p.PaidLessonID,
			&p.Amount, &p.PaymentMethod, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountPaymentsByUser возвращает количество платежей пользователя по фильтру.
func (s *Storage) CountPaymentsByUser(ctx context.Context, userUID string, filter models.PaymentFilter) (int, error) {
	const op = "storage.CountPaymentsByUser"
	conditions, args := buildPaymentFilter(filter, []string{"user_uid = $1"}, []any{userUID})
	return s.countPayments(ctx, op, conditions, args)
}

// CountAllPayments возвращает количество всех платежей по фильтру.
func (s *Storage) CountAllPayments(ctx context.Context, filter models.PaymentFilter) (int, error) {
	const op = "storage.CountAllPayments"
	conditions, args := buildPaymentFilter(filter, nil, nil)
	return s.countPayments(ctx, op, conditions, args)
}

func (s *Storage) countPayments(ctx context.Context, op string, conditions []string, args []any) (int, error) {
	query := `SELECT COUNT(*) FROM payments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	var count int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
