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

// MockRepository реализует интерфейс UserRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateUserProfile(ctx context.Context, userUID string, phone, city *string) (int, error) {
	args := m.Called(ctx, userUID, phone, city)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func newTestService(repo *MockRepository) *UserService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewUserService(repo, logger)
}

func TestMe(t *testing.T) {
	ctx := context.Background()

	t.Run("профиль существующего пользователя", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUser", ctx, "uid-1").Return(&models.User{UID: "uid-1", Email: "user@example.com"}, nil)

		user, err := newTestService(repo).Me(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUser", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, err := newTestService(repo).Me(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserList(t *testing.T) {
	ctx := context.Background()

	t.Run("администратор получает список", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListUsers", ctx, 10, 0).Return([]*models.User{{UID: "uid-1"}, {UID: "uid-2"}}, nil)
		repo.On("CountUsers", ctx).Return(2, nil)

		users, count, err := newTestService(repo).List(ctx, "admin", 10, 0)
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, 2, count)
	})

	t.Run("модератору и пользователю список недоступен", func(t *testing.T) {
		repo := new(MockRepository)

		_, _, err := newTestService(repo).List(ctx, "moderator", 10, 0)
		assert.ErrorIs(t, err, ErrForbidden)

		_, _, err = newTestService(repo).List(ctx, "user", 10, 0)
		assert.ErrorIs(t, err, ErrForbidden)

		repo.AssertNotCalled(t, "ListUsers", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserUpdate(t *testing.T) {
	ctx := context.Background()
	user := &models.User{UID: "uid-1", Email: "user@example.com"}

	t.Run("пользователь обновляет свой профиль", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUser", ctx, "uid-1").Return(user, nil)
		repo.On("UpdateUserProfile", ctx, "uid-1", mock.Anything, mock.Anything).Return(1, nil)

		result, err := newTestService(repo).Update(ctx, "uid-1", "uid-1", "user", models.DummyUserUpdate{
			Phone: "+79990001122",
			City:  "Казань",
		})
		require.NoError(t, err)
		assert.Equal(t, "uid-1", result.UID)
	})

	t.Run("администратор обновляет чужой профиль", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUser", ctx, "uid-1").Return(user, nil)
		repo.On("UpdateUserProfile", ctx, "uid-1", mock.Anything, mock.Anything).Return(1, nil)

		_, err := newTestService(repo).Update(ctx, "uid-1", "admin-uid", "admin", models.DummyUserUpdate{City: "Москва"})
		require.NoError(t, err)
	})

	t.Run("чужой профиль недоступен обычному пользователю", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := newTestService(repo).Update(ctx, "uid-1", "uid-2", "user", models.DummyUserUpdate{})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "UpdateUserProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUser", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, err := newTestService(repo).Update(ctx, "ghost", "ghost", "user", models.DummyUserUpdate{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("администратор удаляет пользователя", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RemoveUser", ctx, "uid-1").Return(1, nil)

		count, err := newTestService(repo).Remove(ctx, "uid-1", "admin")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("не администратору удаление запрещено", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := newTestService(repo).Remove(ctx, "uid-1", "moderator")
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "RemoveUser", mock.Anything, mock.Anything)
	})

	t.Run("удаление несуществующего пользователя", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RemoveUser", ctx, "ghost").Return(0, nil)

		_, err := newTestService(repo).Remove(ctx, "ghost", "admin")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
