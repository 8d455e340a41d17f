// Package services содержит периодические задачи платформы: блокировку
// неактивных пользователей, еженедельную статистику и резервное
// копирование базы.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/magabrotheeeer/education-platform/internal/lib/sl"
	"github.com/magabrotheeeer/education-platform/internal/models"
	"github.com/magabrotheeeer/education-platform/internal/rabbitmq"
)

// Параметры блокировки неактивных пользователей.
const (
	inactivityDays = 30
	maxAttempts    = 3
	retryDelay     = 10 * time.Minute
)

// UserRepository определяет методы хранилища, нужные планировщику.
type UserRepository interface {
	// FindInactiveUsers возвращает активных пользователей, не входивших
	// указанное количество дней.
	FindInactiveUsers(ctx context.Context, days int) ([]*models.User, error)
	// BlockUsers блокирует пользователей по списку UID.
	BlockUsers(ctx context.Context, uids []string) (int, error)
	// CountUsers подсчитывает пользователей.
	CountUsers(ctx context.Context) (int, error)
	// CountAllCourses подсчитывает курсы.
	CountAllCourses(ctx context.Context) (int, error)
	// CountPayments подсчитывает платежи.
	CountPayments(ctx context.Context) (int, error)
}

// Publisher публикует события уведомлений в брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// SchedulerService запускает периодические задачи платформы.
type SchedulerService struct {
	repo       UserRepository
	publisher  Publisher
	backupPath string
	log        *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo UserRepository, publisher Publisher, backupPath string,
	log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:       repo,
		publisher:  publisher,
		backupPath: backupPath,
		log:        log,
	}
}

// RunInactivityCheck ежедневно блокирует пользователей, не входивших
// больше месяца, и отправляет отчет администраторам.
func (s *SchedulerService) RunInactivityCheck(ctx context.Context) {
	s.runInactivityCheck(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runInactivityCheck(ctx)
		}
	}
}

func (s *SchedulerService) runInactivityCheck(ctx context.Context) {
	s.log.Info("starting inactivity check")
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		blocked, err := s.blockInactiveUsers(ctx)
		if err == nil {
			if blocked > 0 {
				s.reportToAdmins("Блокировка неактивных пользователей",
					fmt.Sprintf("Заблокировано пользователей: %d (нет входа более %d дней).", blocked, inactivityDays))
			}
			return
		}
		s.log.Error("inactivity check failed", slog.Int("attempt", attempt), sl.Err(err))
		if attempt == maxAttempts {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func (s *SchedulerService) blockInactiveUsers(ctx context.Context) (int, error) {
	users, err := s.repo.FindInactiveUsers(ctx, inactivityDays)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		s.log.Info("no inactive users found")
		return 0, nil
	}

	uids := make([]string, 0, len(users))
	for _, user := range users {
		uids = append(uids, user.UID)
	}
	blocked, err := s.repo.BlockUsers(ctx, uids)
	if err != nil {
		return 0, err
	}
	s.log.Info("blocked inactive users", slog.Int("count", blocked))
	return blocked, nil
}

// RunWeeklyStats еженедельно отправляет администраторам сводку по платформе.
func (s *SchedulerService) RunWeeklyStats(ctx context.Context) {
	s.runWeeklyStats(ctx)

	ticker := time.NewTicker(7 * 24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runWeeklyStats(ctx)
		}
	}
}

func (s *SchedulerService) runWeeklyStats(ctx context.Context) {
	s.log.Info("starting weekly stats report")
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		s.log.Error("failed to count users", sl.Err(err))
		return
	}
	courses, err := s.repo.CountAllCourses(ctx)
	if err != nil {
		s.log.Error("failed to count courses", sl.Err(err))
		return
	}
	payments, err := s.repo.CountPayments(ctx)
	if err != nil {
		s.log.Error("failed to count payments", sl.Err(err))
		return
	}

	body := fmt.Sprintf("Пользователей: %d\nКурсов: %d\nПлатежей: %d", users, courses, payments)
	s.reportToAdmins("Еженедельная статистика платформы", body)
}

// RunBackup ежедневно создает копию файла базы данных рядом с оригиналом.
func (s *SchedulerService) RunBackup(ctx context.Context) {
	s.runBackup()

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runBackup()
		}
	}
}

func (s *SchedulerService) runBackup() {
	if s.backupPath == "" {
		s.log.Info("backup path is not configured, skipping")
		return
	}
	s.log.Info("starting database backup", slog.String("path", s.backupPath))

	target := fmt.Sprintf("%s.backup_%s", s.backupPath, time.Now().Format("20060102_150405"))
	if err := copyFile(s.backupPath, target); err != nil {
		s.log.Error("backup failed", sl.Err(err))
		return
	}
	s.log.Info("backup completed", slog.String("target", target))
}

// RunPaymentsCheck периодически сверяет платежи. Пока сверка сводится
// к записи в журнал.
func (s *SchedulerService) RunPaymentsCheck(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.log.Info("payments check completed")
		}
	}
}

// RunSessionsCleanup периодически чистит устаревшие checkout-сессии.
// Провайдер истекает сессии сам, задача пока сводится к записи в журнал.
func (s *SchedulerService) RunSessionsCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.log.Info("checkout sessions cleanup completed")
		}
	}
}

func (s *SchedulerService) reportToAdmins(subject, body string) {
	event := models.AdminReportEvent{Subject: subject, Body: body}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyAdminReport, event); err != nil {
		s.log.Error("failed to publish admin report", sl.Err(err))
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
