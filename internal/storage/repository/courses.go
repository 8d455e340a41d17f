package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/education-platform/internal/models"
)

// CreateCourse вставляет новый курс и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (title, description, price, owner_uid,
			      stripe_product_id, stripe_price_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Description, course.Price, course.OwnerUID,
		course.StripeProductID, course.StripePriceID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCourse возвращает курс по ID.
func (s *Storage) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.ReadCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, price, owner_uid,
			      stripe_product_id, stripe_price_id, created_at, updated_at
			  FROM courses
			  WHERE id = $1`
	c := &models.Course{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title,
		&c.Description, &c.Price, &c.OwnerUID, &c.StripeProductID,
		&c.StripePriceID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateCourse обновляет данные курса по ID и возвращает количество
// обновлённых строк.
func (s *Storage) UpdateCourse(ctx context.Context, course models.Course, id int) (int, error) {
	const op = "storage.UpdateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = $1, description = $2, price = $3,
			      stripe_product_id = $4, stripe_price_id = $5,
			      updated_at = NOW()
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query, course.Title, course.Description,
		course.Price, course.StripeProductID, course.StripePriceID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCourse удаляет курс по ID. Уроки и подписки курса удаляются
// каскадно на уровне базы данных.
func (s *Storage) RemoveCourse(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM courses WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCoursesByOwner возвращает курсы пользователя с пагинацией.
func (s *Storage) ListCoursesByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Course, error) {
	const op = "storage.ListCoursesByOwner"

	query := `SELECT id, title, description, price, owner_uid,
			      stripe_product_id, stripe_price_id, created_at, updated_at
			  FROM courses
			  WHERE owner_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	return s.queryCourses(ctx, op, query, ownerUID, limit, offset)
}

// ListAllCourses возвращает список всех курсов с пагинацией.
func (s *Storage) ListAllCourses(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	const op = "storage.ListAllCourses"

	query := `SELECT id, title, description, price, owner_uid,
			      stripe_product_id, stripe_price_id, created_at, updated_at
			  FROM courses
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	return s.queryCourses(ctx, op, query, limit, offset)
}

func (s *Storage) queryCourses(ctx context.Context, op, query string, args ...any) ([]*models.Course, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Course
	for rows.Next() {
		var c models.Course
		if err = rows.Scan(&c.ID, &c.Title, &c.Description, &c.Price,
			&c.OwnerUID, &c.StripeProductID, &c.StripePriceID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountCoursesByOwner возвращает количество курсов пользователя.
func (s *Storage) CountCoursesByOwner(ctx context.Context, ownerUID string) (int, error) {
	const op = "storage.CountCoursesByOwner"
	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM courses WHERE owner_uid = $1`, ownerUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountAllCourses возвращает общее количество курсов.
func (s *Storage) CountAllCourses(ctx context.Context) (int, error) {
	const op = "storage.CountAllCourses"
	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
