package quiz

import (
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
	Repo    QuizRepository
}

func NewQuizContainer(db *gorm.DB, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseRepo, enrollmentRepo)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
