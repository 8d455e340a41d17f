package paymentcreate

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
	paymentservice "github.com/magabrotheeeer/education-platform/internal/services/payment"
)

// MockService реализует интерфейс paymentcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID string, req models.DummyPayment) (int, error) {
	args := m.Called(ctx, userUID, req)
	return args.Int(0), args.Error(1)
}

func TestPaymentCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		withIdentity   bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "успешное создание платежа за курс",
			body:         `{"paid_course_id": 10, "amount": 2000, "payment_method": "transfer"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).Return(7, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":7`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"amount": `,
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "недопустимый способ оплаты",
			body:           `{"paid_course_id": 10, "amount": 100, "payment_method": "crypto"}`,
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PaymentMethod must be one of: cash transfer`,
		},
		{
			name:           "нулевая сумма не проходит валидацию",
			body:           `{"paid_course_id": 10, "payment_method": "cash"}`,
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Amount is a required field`,
		},
		{
			name:           "нет uid в контексте",
			body:           `{"paid_course_id": 10, "amount": 100, "payment_method": "cash"}`,
			withIdentity:   false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:         "обе ссылки сразу",
			body:         `{"paid_course_id": 10, "paid_lesson_id": 5, "amount": 100, "payment_method": "cash"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(0, paymentservice.ErrInvalidReference)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `payment must reference exactly one of course or lesson`,
		},
		{
			name:         "платеж за несуществующий курс",
			body:         `{"paid_course_id": 999, "amount": 100, "payment_method": "cash"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(0, paymentservice.ErrCourseNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"course not found"`,
		},
		{
			name:         "ошибка сервиса",
			body:         `{"paid_course_id": 10, "amount": 100, "payment_method": "cash"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not create payment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body))
			if tt.withIdentity {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
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
