// Package checkout реализует HTTP-обработчик создания платежной сессии
// для покупки курса.
//
// Handler поддерживает заголовок Idempotency-Key: повторный запрос с тем
// же ключом не создает вторую сессию у платежного провайдера.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/education-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/education-platform/internal/http/response"
	"github.com/magabrotheeeer/education-platform/internal/lib/sl"
	"github.com/magabrotheeeer/education-platform/internal/paymentprovider"
	checkoutservice "github.com/magabrotheeeer/education-platform/internal/services/checkout"
)

// Handler управляет HTTP-запросами на создание платежной сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики создания платежной сессии.
type Service interface {
	CreateSession(ctx context.Context, courseID int, userUID, idempotencyKey string) (*paymentprovider.CheckoutSession, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать платежную сессию
// @Description Создает сессию оплаты курса у платежного провайдера и возвращает URL для перенаправления пользователя.
// @Tags Courses
// @Produce  json
// @Param id path int true "ID курса"
// @Param Idempotency-Key header string false "Ключ идемпотентности"
// @Success 200 {object} map[string]any "Платежная сессия"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или курс без цены"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 502 {object} response.ErrorResponse "Ошибка платежного провайдера"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /courses/{id}/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.checkout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid course id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid course id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	session, err := h.service.CreateSession(r.Context(), id, userUID, r.Header.Get("Idempotency-Key"))
	if err != nil {
		var apiErr *paymentprovider.APIError
		switch {
		case errors.Is(err, checkoutservice.ErrCourseNotFound):
			log.Info("course not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
		case errors.Is(err, checkoutservice.ErrNoPrice):
			log.Info("course has no registered price", slog.Int("id", id))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("course has no registered price"))
		case errors.As(err, &apiErr):
			log.Error("payment provider error", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider error: "+apiErr.Message))
		default:
			log.Error("failed to create checkout session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create checkout session"))
		}
		return
	}

	log.Info("success to create checkout session",
		slog.Int("course_id", id), slog.String("session_id", session.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"session_id":   session.ID,
		"checkout_url": session.URL,
	}))
}
