// Package services содержит бизнес-логику рассылки почтовых уведомлений.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/education-platform/internal/lib/sl"
	"github.com/magabrotheeeer/education-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/education-platform/internal/models"
)

const repoTimeout = 30 * time.Second

// SubscriberRepository возвращает получателей рассылок из хранилища.
type SubscriberRepository interface {
	// ListActiveSubscribers возвращает активных подписчиков курса.
	ListActiveSubscribers(ctx context.Context, courseID int) ([]*models.SubscriberInfo, error)
	// ListAdminEmails возвращает адреса администраторов.
	ListAdminEmails(ctx context.Context) ([]string, error)
}

// Transport устанавливает соединение с SMTP-сервером.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// SenderService отправляет письма по событиям из очередей уведомлений.
type SenderService struct {
	repo      SubscriberRepository
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(repo SubscriberRepository, transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		repo:      repo,
		transport: transport,
		log:       log,
	}
}

// SendCourseUpdateEmails рассылает активным подписчикам курса письмо
// с описанием изменений.
func (s *SenderService) SendCourseUpdateEmails(body []byte) error {
	var event models.CourseUpdatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	subscribers, err := s.repo.ListActiveSubscribers(ctx, event.CourseID)
	if err != nil {
		s.log.Error("failed to list subscribers", sl.Err(err))
		return err
	}
	if len(subscribers) == 0 {
		s.log.Info("course has no active subscribers", "course_id", event.CourseID)
		return nil
	}

	subject := fmt.Sprintf("Обновление курса %q", event.CourseTitle)
	bodyText := fmt.Sprintf("Здравствуйте!\n\nКурс %q, на который вы подписаны, был обновлен:\n\n%s",
		event.CourseTitle, event.Changes)

	for _, sub := range subscribers {
		if err := s.sendEmail([]string{sub.Email}, subject, bodyText); err != nil {
			return err
		}
	}
	return nil
}

// SendCourseWelcomeEmail отправляет письмо о подписке на курс.
func (s *SenderService) SendCourseWelcomeEmail(body []byte) error {
	var event models.CourseWelcomeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := fmt.Sprintf("Вы подписались на курс %q", event.CourseTitle)
	bodyText := fmt.Sprintf("Здравствуйте!\n\nВы подписались на курс %q.\nТеперь вы будете получать уведомления о его обновлениях.",
		event.CourseTitle)
	return s.sendEmail([]string{event.Email}, subject, bodyText)
}

// SendUserWelcomeEmail отправляет приветственное письмо после регистрации.
func (s *SenderService) SendUserWelcomeEmail(body []byte) error {
	var event models.UserWelcomeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Добро пожаловать на образовательную платформу"
	bodyText := "Здравствуйте!\n\nВаша учетная запись успешно создана.\nТеперь вы можете создавать курсы и подписываться на обновления."
	return s.sendEmail([]string{event.Email}, subject, bodyText)
}

// SendAdminReport отправляет служебный отчет всем администраторам.
func (s *SenderService) SendAdminReport(body []byte) error {
	var event models.AdminReportEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	admins, err := s.repo.ListAdminEmails(ctx)
	if err != nil {
		s.log.Error("failed to list admin emails", sl.Err(err))
		return err
	}
	if len(admins) == 0 {
		s.log.Info("no admin recipients found")
		return nil
	}
	return s.sendEmail(admins, event.Subject, event.Body)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
