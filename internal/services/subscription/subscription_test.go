package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
)

// MockRepository реализует интерфейс SubscriptionRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetSubscription(ctx context.Context, userUID string, courseID int) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, courseID)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ActivateSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) DeactivateSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListActiveSubscribers(ctx context.Context, courseID int) ([]*models.SubscriberInfo, error) {
	args := m.Called(ctx, courseID)
	if res := args.Get(0); res != nil {
		return res.([]*models.SubscriberInfo), args.Error(1)
	}
	return nil, args.Error(1)
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

func newTestService(repo *MockRepository, publisher *MockPublisher) *SubscriptionService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewSubscriptionService(repo, publisher, logger)
}

func strptr(s string) *string { return &s }

func TestToggle(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 10, Title: "Курс по Go"}

	t.Run("первая подписка активируется и публикует событие", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)
		repo.On("GetSubscription", ctx, "uid-1", 10).Return(nil, sql.ErrNoRows)
		repo.On("ActivateSubscription", ctx, "uid-1", 10).Return(1, nil)
		publisher.On("Publish", rabbitmq.RoutingKeyCourseWelcome, models.CourseWelcomeEvent{
			CourseID:    10,
			CourseTitle: "Курс по Go",
			Email:       "user@example.com",
		}).Return(nil)

		subscribed, err := newTestService(repo, publisher).Toggle(ctx, "uid-1", "user@example.com", 10)
		require.NoError(t, err)
		assert.True(t, subscribed)

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("активная подписка деактивируется без события", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)
		repo.On("GetSubscription", ctx, "uid-1", 10).
			Return(&models.Subscription{UserUID: "uid-1", CourseID: 10, IsActive: true}, nil)
		repo.On("DeactivateSubscription", ctx, "uid-1", 10).Return(1, nil)

		subscribed, err := newTestService(repo, publisher).Toggle(ctx, "uid-1", "user@example.com", 10)
		require.NoError(t, err)
		assert.False(t, subscribed)

		repo.AssertExpectations(t)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("неактивная подписка реактивируется", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)
		repo.On("GetSubscription", ctx, "uid-1", 10).
			Return(&models.Subscription{UserUID: "uid-1", CourseID: 10, IsActive: false}, nil)
		repo.On("ActivateSubscription", ctx, "uid-1", 10).Return(1, nil)
		publisher.On("Publish", rabbitmq.RoutingKeyCourseWelcome, mock.Anything).Return(nil)

		subscribed, err := newTestService(repo, publisher).Toggle(ctx, "uid-1", "user@example.com", 10)
		require.NoError(t, err)
		assert.True(t, subscribed)
	})

	t.Run("несуществующий курс", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		repo.On("ReadCourse", ctx, 999).Return(nil, sql.ErrNoRows)

		_, err := newTestService(repo, publisher).Toggle(ctx, "uid-1", "user@example.com", 999)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("ошибка брокера не ломает подписку", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)
		repo.On("GetSubscription", ctx, "uid-1", 10).Return(nil, sql.ErrNoRows)
		repo.On("ActivateSubscription", ctx, "uid-1", 10).Return(1, nil)
		publisher.On("Publish", rabbitmq.RoutingKeyCourseWelcome, mock.Anything).
			Return(errors.New("broker unavailable"))

		subscribed, err := newTestService(repo, publisher).Toggle(ctx, "uid-1", "user@example.com", 10)
		require.NoError(t, err)
		assert.True(t, subscribed)
	})
}

func TestSubscribers(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 10, Title: "Курс", OwnerUID: strptr("owner-1")}
	subscribers := []*models.SubscriberInfo{
		{UserUID: "uid-1", Email: "first@example.com"},
		{UserUID: "uid-2", Email: "second@example.com"},
	}

	t.Run("владелец видит подписчиков", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)
		repo.On("ListActiveSubscribers", ctx, 10).Return(subscribers, nil)

		result, err := newTestService(repo, new(MockPublisher)).Subscribers(ctx, 10, "owner-1", "user")
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("администратор видит подписчиков чужого курса", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)
		repo.On("ListActiveSubscribers", ctx, 10).Return(subscribers, nil)

		result, err := newTestService(repo, new(MockPublisher)).Subscribers(ctx, 10, "someone-else", "admin")
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("чужой пользователь получает отказ", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)

		_, err := newTestService(repo, new(MockPublisher)).Subscribers(ctx, 10, "someone-else", "user")
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "ListActiveSubscribers", mock.Anything, mock.Anything)
	})

	t.Run("модератор без прав владельца получает отказ", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ReadCourse", ctx, 10).Return(course, nil)

		_, err := newTestService(repo, new(MockPublisher)).Subscribers(ctx, 10, "someone-else", "moderator")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("несуществующий курс", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ReadCourse", ctx, 999).Return(nil, sql.ErrNoRows)

		_, err := newTestService(repo, new(MockPublisher)).Subscribers(ctx, 999, "owner-1", "user")
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}
