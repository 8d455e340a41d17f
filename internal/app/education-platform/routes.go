// Package educationplatform предоставляет маршруты основного приложения.
package educationplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/education-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/checkout"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/create"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/lessons"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/list"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/read"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/remove"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/subscribe"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/subscribers"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/course/update"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/lesson/lessoncreate"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/lesson/lessonlist"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/lesson/lessonread"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/lesson/lessonremove"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/lesson/lessonupdate"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/user/userlist"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/user/userremove"
	"github.com/magabrotheeeer/education-platform/internal/http/handlers/user/userupdate"
	"github.com/magabrotheeeer/education-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/education-platform/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/education-platform/internal/services/auth"
	checkoutservice "github.com/magabrotheeeer/education-platform/internal/services/checkout"
	courseservice "github.com/magabrotheeeer/education-platform/internal/services/course"
	lessonservice "github.com/magabrotheeeer/education-platform/internal/services/lesson"
	paymentservice "github.com/magabrotheeeer/education-platform/internal/services/payment"
	subservice "github.com/magabrotheeeer/education-platform/internal/services/subscription"
	userservice "github.com/magabrotheeeer/education-platform/internal/services/user"
)

// Services объединяет бизнес-логику, которую используют маршруты.
type Services struct {
	Auth         *authservice.AuthService
	Course       *courseservice.CourseService
	Lesson       *lessonservice.LessonService
	Subscription *subservice.SubscriptionService
	Payment      *paymentservice.PaymentService
	Checkout     *checkoutservice.CheckoutService
	User         *userservice.UserService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, maker jwt.Maker, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/refresh", refresh.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/courses", create.New(logger, s.Course).ServeHTTP)
			r.Get("/courses", list.New(logger, s.Course).ServeHTTP)
			r.Get("/courses/{id}", read.New(logger, s.Course).ServeHTTP)
			r.Put("/courses/{id}", update.New(logger, s.Course).ServeHTTP)
			r.Delete("/courses/{id}", remove.New(logger, s.Course).ServeHTTP)
			r.Get("/courses/{id}/lessons", lessons.New(logger, s.Course).ServeHTTP)
			r.Get("/courses/{id}/subscribers", subscribers.New(logger, s.Subscription).ServeHTTP)
			r.Post("/courses/{id}/subscribe", subscribe.New(logger, s.Subscription).ServeHTTP)
			r.Post("/courses/{id}/checkout", checkout.New(logger, s.Checkout).ServeHTTP)

			r.Post("/lessons", lessoncreate.New(logger, s.Lesson).ServeHTTP)
			r.Get("/lessons", lessonlist.New(logger, s.Lesson).ServeHTTP)
			r.Get("/lessons/{id}", lessonread.New(logger, s.Lesson).ServeHTTP)
			r.Put("/lessons/{id}", lessonupdate.New(logger, s.Lesson).ServeHTTP)
			r.Delete("/lessons/{id}", lessonremove.New(logger, s.Lesson).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, s.Payment).ServeHTTP)

			r.Get("/users/me", me.New(logger, s.User).ServeHTTP)
			r.Get("/users", userlist.New(logger, s.User).ServeHTTP)
			r.Put("/users/{uid}", userupdate.New(logger, s.User).ServeHTTP)
			r.Delete("/users/{uid}", userremove.New(logger, s.User).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
