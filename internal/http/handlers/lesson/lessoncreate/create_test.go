package lessoncreate

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

	"github.com/magabrotheeeer/education-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/education-platform/internal/models"
	lessonservice "github.com/magabrotheeeer/education-platform/internal/services/lesson"
)

// MockService реализует интерфейс lessoncreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerUID, role string, req models.DummyLesson) (int, error) {
	args := m.Called(ctx, ownerUID, role, req)
	return args.Int(0), args.Error(1)
}

func TestLessonCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		withIdentity   bool
		role           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "успешное создание урока",
			body:         `{"course_id": 10, "title": "Первый урок", "video_link": "https://youtu.be/abc123"}`,
			withIdentity: true,
			role:         models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", models.RoleUser, models.DummyLesson{
					CourseID:  10,
					Title:     "Первый урок",
					VideoLink: "https://youtu.be/abc123",
				}).Return(5, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":5`,
		},
		{
			name:         "урок без видео",
			body:         `{"course_id": 10, "title": "Текстовый урок"}`,
			withIdentity: true,
			role:         models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", models.RoleUser, models.DummyLesson{
					CourseID: 10,
					Title:    "Текстовый урок",
				}).Return(6, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":6`,
		},
		{
			name:           "ссылка не на YouTube отклоняется",
			body:           `{"course_id": 10, "title": "Урок", "video_link": "https://vimeo.com/123"}`,
			withIdentity:   true,
			role:           models.RoleUser,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field VideoLink must be a YouTube link`,
		},
		{
			name:           "отсутствует course_id",
			body:           `{"title": "Урок"}`,
			withIdentity:   true,
			role:           models.RoleUser,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field CourseID is a required field`,
		},
		{
			name:           "нет uid в контексте",
			body:           `{"course_id": 10, "title": "Урок"}`,
			withIdentity:   false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:         "модератору создание запрещено",
			body:         `{"course_id": 10, "title": "Урок"}`,
			withIdentity: true,
			role:         models.RoleModerator,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", models.RoleModerator, mock.Anything).
					Return(0, lessonservice.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"access denied"`,
		},
		{
			name:         "родительский курс не найден",
			body:         `{"course_id": 999, "title": "Урок"}`,
			withIdentity: true,
			role:         models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", models.RoleUser, mock.Anything).
					Return(0, lessonservice.ErrCourseNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"course not found"`,
		},
		{
			name:         "ошибка сервиса",
			body:         `{"course_id": 10, "title": "Урок"}`,
			withIdentity: true,
			role:         models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", models.RoleUser, mock.Anything).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not create lesson"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/lessons", strings.NewReader(tt.body))
			if tt.withIdentity {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
				ctx = context.WithValue(ctx, middlewarectx.Role, tt.role)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
