package module

import (
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"gorm.io/gorm"
)

type ModuleContainer struct {
	Handler *Handler
	Service ModuleService
	Repo    ModuleRepository
}

func NewModuleContainer(db *gorm.DB, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) *ModuleContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseRepo, enrollmentRepo)
	handler := NewHandler(service)

	return &ModuleContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
