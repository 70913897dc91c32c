package container

import (
	"context"
	"log"
	"os"

	"github.com/saulo-duarte/lms-lambda/internal/auth"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/dashboard"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/material"
	"github.com/saulo-duarte/lms-lambda/internal/module"
	"github.com/saulo-duarte/lms-lambda/internal/quiz"
	"github.com/saulo-duarte/lms-lambda/internal/submission"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	CourseContainer     *course.CourseContainer
	EnrollmentContainer *enrollment.EnrollmentContainer
	QuizContainer       *quiz.QuizContainer
	SubmissionContainer *submission.SubmissionContainer
	ModuleContainer     *module.ModuleContainer
	MaterialContainer   *material.MaterialContainer
	DashboardContainer  *dashboard.DashboardContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := migrate(); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	courseContainer := course.NewCourseContainer(config.DB, userContainer.Repo)
	enrollmentContainer := enrollment.NewEnrollmentContainer(config.DB, courseContainer.Repo)
	quizContainer := quiz.NewQuizContainer(config.DB, courseContainer.Repo, enrollmentContainer.Repo)
	submissionContainer := submission.NewSubmissionContainer(
		config.DB,
		quizContainer.Repo,
		courseContainer.Repo,
		enrollmentContainer.Repo,
	)
	moduleContainer := module.NewModuleContainer(config.DB, courseContainer.Repo, enrollmentContainer.Repo)
	materialContainer := material.NewMaterialContainer(config.DB, courseContainer.Repo, enrollmentContainer.Repo)
	dashboardContainer := dashboard.NewDashboardContainer(
		userContainer.Repo,
		courseContainer.Repo,
		enrollmentContainer.Repo,
	)

	return &Container{
		UserContainer:       userContainer,
		CourseContainer:     courseContainer,
		EnrollmentContainer: enrollmentContainer,
		QuizContainer:       quizContainer,
		SubmissionContainer: submissionContainer,
		ModuleContainer:     moduleContainer,
		MaterialContainer:   materialContainer,
		DashboardContainer:  dashboardContainer,
	}
}

func migrate() error {
	if err := config.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return config.DB.AutoMigrate(
		&user.User{},
		&course.Course{},
		&enrollment.Enrollment{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.AnswerOption{},
		&quiz.StudentAnswer{},
		&module.Module{},
		&material.Material{},
	)
}
