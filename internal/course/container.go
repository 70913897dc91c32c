package course

import (
	"github.com/saulo-duarte/lms-lambda/internal/user"
	"gorm.io/gorm"
)

type CourseContainer struct {
	Handler *Handler
	Service CourseService
	Repo    CourseRepository
}

func NewCourseContainer(db *gorm.DB, userRepo user.UserRepository) *CourseContainer {
	repo := NewRepository(db)
	service := NewService(repo, userRepo)
	handler := NewHandler(service)

	return &CourseContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
