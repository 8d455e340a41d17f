package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authservice "github.com/magabrotheeeer/education-platform/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (*authservice.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if res := args.Get(0); res != nil {
		return res.(*authservice.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"email": "user@example.com", "password": "password123"}`,
			setupMock: func(m *MockService) {
				pair := &authservice.TokenPair{
					AccessToken:  "access-token",
					RefreshToken: "refresh-token",
				}
				m.On("Login", mock.Anything, "user@example.com", "password123").Return(pair, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token":"access-token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email": `,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "пустой пароль не проходит валидацию",
			body:           `{"email": "user@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "неверные учетные данные",
			body: `{"email": "user@example.com", "password": "wrongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@example.com", "wrongpass").
					Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"invalid email or password"`,
		},
		{
			name: "заблокированный пользователь",
			body: `{"email": "blocked@example.com", "password": "password123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "blocked@example.com", "password123").
					Return(nil, authservice.ErrUserBlocked)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"user is blocked"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"email": "user@example.com", "password": "password123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@example.com", "password123").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"failed to login"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
