// Package list реализует HTTP-обработчик для получения списка курсов.
//
// Handler извлекает параметры пагинации из query-строки, вызывает
// бизнес-логику и возвращает страницу курсов с метаданными пагинации.
// Обычный пользователь видит только свои курсы, модератор и администратор — все.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/education-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/education-platform/internal/http/response"
	"github.com/magabrotheeeer/education-platform/internal/lib/pagination"
	"github.com/magabrotheeeer/education-platform/internal/lib/sl"
	"github.com/magabrotheeeer/education-platform/internal/models"
)

// Handler управляет HTTP-запросами на получение списка курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка курсов.
type Service interface {
	List(ctx context.Context, userUID, role string, limit, offset int) ([]*models.Course, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список курсов
// @Description Возвращает страницу курсов текущего пользователя. Модератор и администратор видят все курсы.
// @Tags Courses
// @Produce  json
// @Param page query int false "Номер страницы (по умолчанию 1)"
// @Param page_size query int false "Размер страницы (по умолчанию 10, максимум 50)"
// @Success 200 {object} map[string]any "Страница курсов с метаданными"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	role, okRole := r.Context().Value(middlewarectx.Role).(string)
	if !ok || !okRole || userUID == "" {
		log.Error("user identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	params := pagination.FromRequest(r)
	courses, count, err := h.service.List(r.Context(), userUID, role, params.Limit(), params.Offset())
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list courses"))
		return
	}

	log.Info("success to list courses", slog.Int("count", len(courses)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": courses,
		"meta":  pagination.NewMeta(count, params),
	}))
}
