// Package paymentlist реализует HTTP-обработчик для получения списка
// платежей с фильтрацией и сортировкой.
//
// Обычный пользователь видит только свои платежи, модератор и
// администратор — все.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/education-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/education-platform/internal/http/response"
	"github.com/magabrotheeeer/education-platform/internal/lib/pagination"
	"github.com/magabrotheeeer/education-platform/internal/lib/sl"
	"github.com/magabrotheeeer/education-platform/internal/models"
)

const dateLayout = "2006-01-02"

// Handler управляет HTTP-запросами на получение списка платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка платежей.
type Service interface {
	List(ctx context.Context, userUID, role string, filter models.PaymentFilter, limit, offset int) ([]*models.Payment, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список платежей
// @Description Возвращает страницу платежей с фильтрацией по курсу, уроку, способу оплаты, датам и суммам. Модератор и администратор видят все платежи.
// @Tags Payments
// @Produce  json
// @Param paid_course_id query int false "Фильтр по курсу"
// @Param paid_lesson_id query int false "Фильтр по уроку"
// @Param payment_method query string false "Способ оплаты (cash или transfer)"
// @Param date_from query string false "Начало периода (YYYY-MM-DD)"
// @Param date_to query string false "Конец периода (YYYY-MM-DD)"
// @Param amount_min query number false "Минимальная сумма"
// @Param amount_max query number false "Максимальная сумма"
// @Param order_by query string false "Сортировка: payment_date или amount, префикс '-' для убывания"
// @Param page query int false "Номер страницы (по умолчанию 1)"
// @Param page_size query int false "Размер страницы (по умолчанию 10, максимум 50)"
// @Success 200 {object} map[string]any "Страница платежей с метаданными"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры фильтра"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
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

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("invalid filter params", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid filter params"))
		return
	}

	params := pagination.FromRequest(r)
	payments, count, err := h.service.List(r.Context(), userUID, role, filter, params.Limit(), params.Offset())
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("success to list payments", slog.Int("count", len(payments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": payments,
		"meta":  pagination.NewMeta(count, params),
	}))
}

func parseFilter(r *http.Request) (models.PaymentFilter, error) {
	var filter models.PaymentFilter
	query := r.URL.Query()

	if raw := query.Get("paid_course_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.PaidCourseID = &id
	}
	if raw := query.Get("paid_lesson_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.PaidLessonID = &id
	}
	if raw := query.Get("payment_method"); raw != "" {
		filter.PaymentMethod = &raw
	}
	if raw := query.Get("date_from"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &date
	}
	if raw := query.Get("date_to"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &date
	}
	if raw := query.Get("amount_min"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, err
		}
		filter.AmountMin = &amount
	}
	if raw := query.Get("amount_max"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, err
		}
		filter.AmountMax = &amount
	}
	filter.OrderBy = query.Get("order_by")
	return filter, nil
}
