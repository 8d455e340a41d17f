// Package subscribe реализует HTTP-обработчик переключения подписки
// на курс.
//
// Повторный запрос к тому же курсу снимает подписку: активная подписка
// деактивируется, отсутствующая или неактивная — активируется. В ответе
// возвращается итоговое состояние.
package subscribe

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
	subservice "github.com/magabrotheeeer/education-platform/internal/services/subscription"
)

// Handler управляет HTTP-запросами на переключение подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики переключения подписки.
type Service interface {
	Toggle(ctx context.Context, userUID, email string, courseID int) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переключить подписку на курс
// @Description Подписывает текущего пользователя на курс или снимает подписку, если она уже активна. При подписке отправляется приветственное письмо.
// @Tags Courses
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} map[string]any "Итоговое состояние подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /courses/{id}/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.subscribe"
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
	email, okEmail := r.Context().Value(middlewarectx.User).(string)
	if !ok || !okEmail || userUID == "" {
		log.Error("user identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	subscribed, err := h.service.Toggle(r.Context(), userUID, email, id)
	if err != nil {
		if errors.Is(err, subservice.ErrCourseNotFound) {
			log.Info("course not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
			return
		}
		log.Error("failed to toggle subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle subscription"))
		return
	}

	log.Info("success to toggle subscription",
		slog.Int("course_id", id), slog.Bool("subscribed", subscribed))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscribed": subscribed,
	}))
}
