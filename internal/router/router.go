package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/lms-lambda/internal/auth"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/dashboard"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/material"
	"github.com/saulo-duarte/lms-lambda/internal/middlewares"
	"github.com/saulo-duarte/lms-lambda/internal/module"
	"github.com/saulo-duarte/lms-lambda/internal/quiz"
	"github.com/saulo-duarte/lms-lambda/internal/submission"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	CourseHandler     *course.Handler
	EnrollmentHandler *enrollment.Handler
	QuizHandler       *quiz.Handler
	SubmissionHandler *submission.Handler
	ModuleHandler     *module.Handler
	MaterialHandler   *material.Handler
	DashboardHandler  *dashboard.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/courses", course.Routes(cfg.CourseHandler))
		r.Mount("/enrollments", enrollment.Routes(cfg.EnrollmentHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/modules", module.Routes(cfg.ModuleHandler))
		r.Mount("/materials", material.Routes(cfg.MaterialHandler))
		r.With(auth.RequireRoles(string(user.RoleAdmin))).
			Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/dashboard", dashboard.Routes(cfg.DashboardHandler))

		r.Put("/courses/{courseID}/roster", cfg.EnrollmentHandler.ReconcileRoster)
		r.Get("/courses/{courseID}/modules", cfg.ModuleHandler.ListByCourse)
		r.Get("/courses/{courseID}/materials", cfg.MaterialHandler.ListByCourse)

		r.Post("/questions/{questionID}/options", cfg.QuizHandler.AddAnswerOption)

		r.Get("/quizzes/{id}/can-submit", cfg.SubmissionHandler.CanSubmit)
		r.Post("/quizzes/{id}/submit", cfg.SubmissionHandler.Submit)
		r.Get("/quizzes/{id}/result", cfg.SubmissionHandler.Result)
		r.Get("/quizzes/{id}/report", cfg.SubmissionHandler.Report)
	})
	return r
}
