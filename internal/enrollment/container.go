package enrollment

import (
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"gorm.io/gorm"
)

type EnrollmentContainer struct {
	Handler *Handler
	Service EnrollmentService
	Repo    EnrollmentRepository
}

func NewEnrollmentContainer(db *gorm.DB, courseRepo course.CourseRepository) *EnrollmentContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseRepo)
	handler := NewHandler(service)

	return &EnrollmentContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
