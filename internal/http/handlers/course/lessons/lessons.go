// Package lessons реализует HTTP-обработчик для получения уроков курса.
package lessons

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/education-platform/internal/http/response"
	"github.com/magabrotheeeer/education-platform/internal/lib/sl"
	"github.com/magabrotheeeer/education-platform/internal/models"
	courseservice "github.com/magabrotheeeer/education-platform/internal/services/course"
)

// Handler управляет HTTP-запросами на получение уроков курса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики уроков курса.
type Service interface {
	Lessons(ctx context.Context, courseID int) ([]*models.Lesson, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Уроки курса
// @Description Возвращает список уроков курса по его ID.
// @Tags Courses
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} map[string]any "Список уроков"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /courses/{id}/lessons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.lessons"
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

	lessons, err := h.service.Lessons(r.Context(), id)
	if err != nil {
		if errors.Is(err, courseservice.ErrCourseNotFound) {
			log.Info("course not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("course not found"))
			return
		}
		log.Error("failed to list course lessons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list course lessons"))
		return
	}

	log.Info("success to list course lessons", slog.Int("course_id", id), slog.Int("count", len(lessons)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": lessons,
		"count": len(lessons),
	}))
}
