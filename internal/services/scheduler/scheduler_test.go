package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
)

// MockRepository реализует интерфейс UserRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindInactiveUsers(ctx context.Context, days int) ([]*models.User, error) {
	args := m.Called(ctx, days)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) BlockUsers(ctx context.Context, uids []string) (int, error) {
	args := m.Called(ctx, uids)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountAllCourses(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountPayments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPublisher реализует интерфейс Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestService(repo *MockRepository, publisher *MockPublisher, backupPath string) *SchedulerService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewSchedulerService(repo, publisher, backupPath, logger)
}

func TestBlockInactiveUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("неактивные пользователи блокируются", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindInactiveUsers", ctx, inactivityDays).Return([]*models.User{
			{UID: "uid-1"},
			{UID: "uid-2"},
		}, nil)
		repo.On("BlockUsers", ctx, []string{"uid-1", "uid-2"}).Return(2, nil)

		blocked, err := newTestService(repo, new(MockPublisher), "").blockInactiveUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, blocked)
	})

	t.Run("без неактивных пользователей блокировка не вызывается", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindInactiveUsers", ctx, inactivityDays).Return([]*models.User{}, nil)

		blocked, err := newTestService(repo, new(MockPublisher), "").blockInactiveUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, blocked)
		repo.AssertNotCalled(t, "BlockUsers", mock.Anything, mock.Anything)
	})
}

func TestRunInactivityCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("при блокировке отправляется отчет администраторам", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		repo.On("FindInactiveUsers", ctx, inactivityDays).Return([]*models.User{{UID: "uid-1"}}, nil)
		repo.On("BlockUsers", ctx, []string{"uid-1"}).Return(1, nil)
		publisher.On("Publish", rabbitmq.RoutingKeyAdminReport, mock.MatchedBy(func(e models.AdminReportEvent) bool {
			return e.Subject == "Блокировка неактивных пользователей" && e.Body != ""
		})).Return(nil)

		newTestService(repo, publisher, "").runInactivityCheck(ctx)

		publisher.AssertExpectations(t)
	})

	t.Run("без блокировок отчет не отправляется", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		repo.On("FindInactiveUsers", ctx, inactivityDays).Return([]*models.User{}, nil)

		newTestService(repo, publisher, "").runInactivityCheck(ctx)

		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestRunWeeklyStats(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	publisher := new(MockPublisher)
	repo.On("CountUsers", ctx).Return(120, nil)
	repo.On("CountAllCourses", ctx).Return(15, nil)
	repo.On("CountPayments", ctx).Return(340, nil)
	publisher.On("Publish", rabbitmq.RoutingKeyAdminReport, mock.MatchedBy(func(e models.AdminReportEvent) bool {
		return e.Subject == "Еженедельная статистика платформы" &&
			e.Body == "Пользователей: 120\nКурсов: 15\nПлатежей: 340"
	})).Return(nil)

	newTestService(repo, publisher, "").runWeeklyStats(ctx)

	publisher.AssertExpectations(t)
}

func TestRunBackup(t *testing.T) {
	t.Run("копия создается рядом с оригиналом", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "platform.db")
		require.NoError(t, os.WriteFile(src, []byte("database content"), 0o644))

		newTestService(new(MockRepository), new(MockPublisher), src).runBackup()

		matches, err := filepath.Glob(src + ".backup_*")
		require.NoError(t, err)
		require.Len(t, matches, 1)

		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.Equal(t, "database content", string(data))
	})

	t.Run("пустой путь пропускает резервное копирование", func(t *testing.T) {
		// не должно паниковать и создавать файлы
		newTestService(new(MockRepository), new(MockPublisher), "").runBackup()
	})
}

func TestJobsStopOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := new(MockRepository)
	repo.On("FindInactiveUsers", mock.Anything, inactivityDays).Return([]*models.User{}, nil)
	repo.On("CountUsers", mock.Anything).Return(0, nil)
	repo.On("CountAllCourses", mock.Anything).Return(0, nil)
	repo.On("CountPayments", mock.Anything).Return(0, nil)
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	svc := newTestService(repo, publisher, "")

	jobs := map[string]func(context.Context){
		"inactivity check": svc.RunInactivityCheck,
		"weekly stats":     svc.RunWeeklyStats,
		"backup":           svc.RunBackup,
		"payments check":   svc.RunPaymentsCheck,
		"sessions cleanup": svc.RunSessionsCleanup,
	}
	for name, job := range jobs {
		t.Run(name, func(t *testing.T) {
			done := make(chan struct{})
			go func() {
				job(ctx)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("job did not stop after context cancellation")
			}
		})
	}
}
