package submission

import (
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/quiz"
	"gorm.io/gorm"
)

type SubmissionContainer struct {
	Handler *Handler
	Service SubmissionService
}

func NewSubmissionContainer(
	db *gorm.DB,
	quizRepo quiz.QuizRepository,
	courseRepo course.CourseRepository,
	enrollmentRepo enrollment.EnrollmentRepository,
) *SubmissionContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizRepo, courseRepo, enrollmentRepo)
	handler := NewHandler(service)

	return &SubmissionContainer{
		Handler: handler,
		Service: service,
	}
}
