package material

import (
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"gorm.io/gorm"
)

type MaterialContainer struct {
	Handler *Handler
	Service MaterialService
	Repo    MaterialRepository
}

func NewMaterialContainer(db *gorm.DB, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) *MaterialContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseRepo, enrollmentRepo)
	handler := NewHandler(service)

	return &MaterialContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
