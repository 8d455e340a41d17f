package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/education-platform/internal/models"
)

// CreateLesson вставляет новый урок и возвращает его ID.
func (s *Storage) CreateLesson(ctx context.Context, lesson models.Lesson) (int, error) {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lessons (course_id, title, description, video_link, owner_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		lesson.CourseID, lesson.Title, lesson.Description, lesson.VideoLink,
		lesson.OwnerUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadLesson возвращает урок по ID.
func (s *Storage) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	const op = "storage.ReadLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, video_link, owner_uid,
			      created_at, updated_at
			  FROM lessons
			  WHERE id = $1`
	l := &models.Lesson{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.CourseID,
		&l.Title, &l.Description, &l.VideoLink, &l.OwnerUID,
		&l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// UpdateLesson обновляет данные урока по ID и возвращает количество
// обновлённых строк.
func (s *Storage) UpdateLesson(ctx context.Context, lesson models.Lesson, id int) (int, error) {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE lessons
			  SET title = $1, description = $2, video_link = $3, updated_at = NOW()
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query,
		lesson.Title, lesson.Description, lesson.VideoLink, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveLesson удаляет урок по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveLesson(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM lessons WHERE id = $1`
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

// ListLessonsByOwner возвращает уроки пользователя с пагинацией.
func (s *Storage) ListLessonsByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Lesson, error) {
	const op = "storage.ListLessonsByOwner"

	query := `SELECT id, course_id, title, description, video_link, owner_uid,
			      created_at, updated_at
			  FROM lessons
			  WHERE owner_uid = $1
			  ORDER BY created_at
			  LIMIT $2 OFFSET $3`
	return s.queryLessons(ctx, op, query, ownerUID, limit, offset)
}

// ListAllLessons возвращает список всех уроков с пагинацией.
func (s *Storage) ListAllLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	const op = "storage.ListAllLessons"

	query := `SELECT id, course_id, title, description, video_link, owner_uid,
			      created_at, updated_at
			  FROM lessons
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	return s.queryLessons(ctx, op, query, limit, offset)
}

// ListLessonsByCourse возвращает все уроки курса.
func (s *Storage) ListLessonsByCourse(ctx context.Context, courseID int) ([]*models.Lesson, error) {
	const op = "storage.ListLessonsByCourse"

	query := `SELECT id, course_id, title, description, video_link, owner_uid,
			      created_at, updated_at
			  FROM lessons
			  WHERE course_id = $1
			  ORDER BY created_at`
	return s.queryLessons(ctx, op, query, courseID)
}

func (s *Storage) queryLessons(ctx context.Context, op, query string, args ...any) ([]*models.Lesson, error) {
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
	var result []*models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err = rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Description,
			&l.VideoLink, &l.OwnerUID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountLessonsByOwner возвращает количество уроков пользователя.
func (s *Storage) CountLessonsByOwner(ctx context.Context, ownerUID string) (int, error) {
	const op = "storage.CountLessonsByOwner"
	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lessons WHERE owner_uid = $1`, ownerUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountAllLessons возвращает общее количество уроков.
func (s *Storage) CountAllLessons(ctx context.Context) (int, error) {
	const op = "storage.CountAllLessons"
	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountLessonsByCourse возвращает количество уроков курса.
func (s *Storage) CountLessonsByCourse(ctx context.Context, courseID int) (int, error) {
	const op = "storage.CountLessonsByCourse"
	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lessons WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
