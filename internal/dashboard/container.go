package dashboard

import (
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

type DashboardContainer struct {
	Handler *Handler
	Service DashboardService
}

func NewDashboardContainer(userRepo user.UserRepository, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) *DashboardContainer {
	service := NewService(userRepo, courseRepo, enrollmentRepo)
	handler := NewHandler(service)

	return &DashboardContainer{
		Handler: handler,
		Service: service,
	}
}
