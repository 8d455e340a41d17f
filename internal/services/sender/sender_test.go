package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/education-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/education-platform/internal/models"
)

// MockRepository реализует интерфейс SubscriberRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActiveSubscribers(ctx context.Context, courseID int) ([]*models.SubscriberInfo, error) {
	args := m.Called(ctx, courseID)
	if res := args.Get(0); res != nil {
		return res.([]*models.SubscriberInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTransport реализует интерфейс Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

// MockSMTPClient реализует интерфейс smtp.Client
type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

// MockSMTPWriter реализует io.WriteCloser
type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func happyClient(transport *MockTransport) *MockSMTPClient {
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)
	transport.On("GetSMTPUser").Return("sender@example.com")
	transport.On("Connect").Return(client, nil)
	client.On("Mail", "sender@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	client.On("Close").Return(nil)
	client.On("Quit").Return(nil)
	writer.On("Write", mock.AnythingOfType("[]uint8")).Return(100, nil)
	writer.On("Close").Return(nil)
	return client
}

func TestSendCourseWelcomeEmail(t *testing.T) {
	t.Run("письмо уходит подписавшемуся", func(t *testing.T) {
		transport := new(MockTransport)
		client := happyClient(transport)
		client.On("Rcpt", "student@example.com").Return(nil)

		svc := NewSenderService(new(MockRepository), transport, newNoopLogger())
		err := svc.SendCourseWelcomeEmail([]byte(`{"email":"student@example.com","course_title":"Курс по Go"}`))
		assert.NoError(t, err)

		client.AssertExpectations(t)
	})

	t.Run("битое тело сообщения", func(t *testing.T) {
		svc := NewSenderService(new(MockRepository), new(MockTransport), newNoopLogger())
		err := svc.SendCourseWelcomeEmail([]byte(`{not json`))
		assert.Error(t, err)
	})
}

func TestSendCourseUpdateEmails(t *testing.T) {
	t.Run("рассылка всем активным подписчикам", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListActiveSubscribers", mock.Anything, 10).Return([]*models.SubscriberInfo{
			{Email: "first@example.com"},
			{Email: "second@example.com"},
		}, nil)
		transport := new(MockTransport)
		client := happyClient(transport)
		client.On("Rcpt", "first@example.com").Return(nil)
		client.On("Rcpt", "second@example.com").Return(nil)

		svc := NewSenderService(repo, transport, newNoopLogger())
		err := svc.SendCourseUpdateEmails([]byte(`{"course_id":10,"course_title":"Курс","changes":"Название изменено"}`))
		assert.NoError(t, err)

		client.AssertExpectations(t)
	})

	t.Run("нет подписчиков — писем нет", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListActiveSubscribers", mock.Anything, 10).Return([]*models.SubscriberInfo{}, nil)
		transport := new(MockTransport)

		svc := NewSenderService(repo, transport, newNoopLogger())
		err := svc.SendCourseUpdateEmails([]byte(`{"course_id":10,"course_title":"Курс","changes":"..."}`))
		assert.NoError(t, err)

		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("отказ MAIL FROM возвращает ошибку", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListActiveSubscribers", mock.Anything, 10).Return([]*models.SubscriberInfo{
			{Email: "first@example.com"},
		}, nil)
		transport := new(MockTransport)
		client := new(MockSMTPClient)
		transport.On("GetSMTPUser").Return("sender@example.com")
		transport.On("Connect").Return(client, nil)
		client.On("Mail", "sender@example.com").Return(errors.New("550 rejected"))
		client.On("Close").Return(nil)

		svc := NewSenderService(repo, transport, newNoopLogger())
		err := svc.SendCourseUpdateEmails([]byte(`{"course_id":10,"course_title":"Курс","changes":"..."}`))
		assert.Error(t, err)
	})
}

func TestSendAdminReport(t *testing.T) {
	t.Run("отчет уходит всем администраторам", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAdminEmails", mock.Anything).Return([]string{"admin@example.com"}, nil)
		transport := new(MockTransport)
		client := happyClient(transport)
		client.On("Rcpt", "admin@example.com").Return(nil)

		svc := NewSenderService(repo, transport, newNoopLogger())
		err := svc.SendAdminReport([]byte(`{"subject":"Отчет","body":"Текст"}`))
		assert.NoError(t, err)

		client.AssertExpectations(t)
	})

	t.Run("нет администраторов — писем нет", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAdminEmails", mock.Anything).Return([]string{}, nil)
		transport := new(MockTransport)

		svc := NewSenderService(repo, transport, newNoopLogger())
		err := svc.SendAdminReport([]byte(`{"subject":"Отчет","body":"Текст"}`))
		assert.NoError(t, err)

		transport.AssertNotCalled(t, "Connect")
	})
}
