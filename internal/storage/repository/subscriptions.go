package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/education-platform/internal/models"
)

// GetSubscription возвращает подписку пары (user_uid, course_id),
// если она существует.
func (s *Storage) GetSubscription(ctx context.Context, userUID string, courseID int) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, course_id, is_active, created_at
			  FROM subscriptions
			  WHERE user_uid = $1 AND course_id = $2`
	sub := &models.Subscription{}
	if err := s.DB.QueryRowContext(ctx, query, userUID, courseID).Scan(&sub.ID,
		&sub.UserUID, &sub.CourseID, &sub.IsActive, &sub.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ActivateSubscription создает подписку или реактивирует существующую.
// Уникальное ограничение (user_uid, course_id) вместе с ON CONFLICT
// делает операцию идемпотентной: гонка двух одновременных запросов
// сводится к "уже подписан".
func (s *Storage) ActivateSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, course_id, is_active)
			  VALUES ($1, $2, TRUE)
			  ON CONFLICT (user_uid, course_id)
			  DO UPDATE SET is_active = TRUE
			  RETURNING id`
	var id int
	if err := s.DB.QueryRowContext(ctx, query, userUID, courseID).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// DeactivateSubscription снимает флаг активности подписки и возвращает
// количество затронутых строк.
func (s *Storage) DeactivateSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	const op = "storage.DeactivateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET is_active = FALSE
			  WHERE user_uid = $1 AND course_id = $2 AND is_active = TRUE`
	result, err := s.DB.ExecContext(ctx, query, userUID, courseID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListActiveSubscribers возвращает активных подписчиков курса.
func (s *Storage) ListActiveSubscribers(ctx context.Context, courseID int) ([]*models.SubscriberInfo, error) {
	const op = "storage.ListActiveSubscribers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.email, sub.created_at
			  FROM subscriptions sub
			  JOIN users u ON u.uid = sub.user_uid
			  WHERE sub.course_id = $1 AND sub.is_active = TRUE
			  ORDER BY sub.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.SubscriberInfo
	for rows.Next() {
		var info models.SubscriberInfo
		if err = rows.Scan(&info.UserUID, &info.Email, &info.SubscribedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
