package services

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/education-platform/internal/models"
)

// MockRepository реализует интерфейс LessonRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateLesson(ctx context.Context, lesson models.Lesson) (int, error) {
	args := m.Called(ctx, lesson)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateLesson(ctx context.Context, lesson models.Lesson, id int) (int, error) {
	args := m.Called(ctx, lesson, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveLesson(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListLessonsByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Lesson, error) {
	args := m.Called(ctx, ownerUID, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListAllLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CountLessonsByOwner(ctx context.Context, ownerUID string) (int, error) {
	args := m.Called(ctx, ownerUID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountAllLessons(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPublisher реализует интерфейс Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestService() (*LessonService, *MockRepository, *MockPublisher) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewLessonService(repo, publisher, logger), repo, publisher
}

func TestLessonCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное создание урока", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("ReadCourse", ctx, 10).Return(&models.Course{ID: 10, Title: "Курс"}, nil)
		repo.On("CreateLesson", ctx, mock.MatchedBy(func(l models.Lesson) bool {
			return l.CourseID == 10 && l.Title == "Урок" && l.OwnerUID != nil && *l.OwnerUID == "uid-1"
		})).Return(5, nil)

		id, err := svc.Create(ctx, "uid-1", models.RoleUser, models.DummyLesson{CourseID: 10, Title: "Урок"})
		require.NoError(t, err)
		assert.Equal(t, 5, id)
	})

	t.Run("модератору создание запрещено", func(t *testing.T) {
		svc, repo, _ := newTestService()

		_, err := svc.Create(ctx, "uid-moder", models.RoleModerator, models.DummyLesson{CourseID: 10, Title: "Урок"})
		assert.ErrorIs(t, err, ErrForbidden)

		repo.AssertNotCalled(t, "ReadCourse", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
	})

	t.Run("родительский курс не найден", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("ReadCourse", ctx, 999).Return(nil, sql.ErrNoRows)

		_, err := svc.Create(ctx, "uid-1", models.RoleUser, models.DummyLesson{CourseID: 999, Title: "Урок"})
		assert.ErrorIs(t, err, ErrCourseNotFound)

		repo.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
	})
}
