package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/material"
	"github.com/saulo-duarte/lms-lambda/internal/module"
	"github.com/saulo-duarte/lms-lambda/internal/user"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker não disponível: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "lms", "POSTGRES_PASSWORD": "lmspass", "POSTGRES_DB": "lmsdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker não disponível: %v", err)
		}
		t.Fatalf("falha ao subir postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("porta: %v", err)
	}
	dsn := fmt.Sprintf("host=%s port=%s user=lms password=lmspass dbname=lmsdb sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		t.Fatalf("falha ao criar extensão uuid-ossp: %v", err)
	}
	if err := db.AutoMigrate(
		&user.User{},
		&course.Course{},
		&enrollment.Enrollment{},
		&Quiz{},
		&Question{},
		&AnswerOption{},
		&StudentAnswer{},
		&module.Module{},
		&material.Material{},
	); err != nil {
		t.Fatalf("falha ao migrar esquema de teste: %v", err)
	}
	return db
}

type seededQuiz struct {
	instructorID uuid.UUID
	studentID    uuid.UUID
	courseID     uuid.UUID
	quizID       uuid.UUID
	questionIDs  []uuid.UUID
}

// seedQuizTree monta um curso completo: instrutor, aluno matriculado e um
// quiz com duas perguntas de duas alternativas, cada pergunta já
// respondida pelo aluno.
func seedQuizTree(t *testing.T, db *gorm.DB) seededQuiz {
	t.Helper()

	instructor := &user.User{
		ID:    uuid.New(),
		Name:  "Instrutor",
		Email: fmt.Sprintf("instrutor-%s@lms.test", uuid.New()),
		Role:  user.RoleInstructor,
	}
	student := &user.User{
		ID:    uuid.New(),
		Name:  "Aluno",
		Email: fmt.Sprintf("aluno-%s@lms.test", uuid.New()),
		Role:  user.RoleStudent,
	}
	for _, u := range []*user.User{instructor, student} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("falha ao criar usuário: %v", err)
		}
	}

	c := &course.Course{ID: uuid.New(), Title: "Estruturas de Dados", InstructorID: instructor.ID}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("falha ao criar curso: %v", err)
	}
	if err := db.Create(&enrollment.Enrollment{StudentID: student.ID, CourseID: c.ID}).Error; err != nil {
		t.Fatalf("falha ao matricular aluno: %v", err)
	}

	q := &Quiz{ID: uuid.New(), Title: "Prova 1", CourseID: &c.ID}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("falha ao criar quiz: %v", err)
	}

	var questionIDs []uuid.UUID
	for i := 0; i < 2; i++ {
		question := &Question{ID: uuid.New(), QuizID: q.ID, Text: fmt.Sprintf("Pergunta %d", i+1)}
		if err := db.Create(question).Error; err != nil {
			t.Fatalf("falha ao criar pergunta: %v", err)
		}
		questionIDs = append(questionIDs, question.ID)

		correct := &AnswerOption{ID: uuid.New(), QuestionID: question.ID, Text: "Certa", IsCorrect: true}
		wrong := &AnswerOption{ID: uuid.New(), QuestionID: question.ID, Text: "Errada"}
		for _, o := range []*AnswerOption{correct, wrong} {
			if err := db.Create(o).Error; err != nil {
				t.Fatalf("falha ao criar alternativa: %v", err)
			}
		}

		answer := &StudentAnswer{
			StudentID:      student.ID,
			QuestionID:     question.ID,
			AnswerOptionID: correct.ID,
		}
		if err := db.Create(answer).Error; err != nil {
			t.Fatalf("falha ao registrar resposta do aluno: %v", err)
		}
	}

	return seededQuiz{
		instructorID: instructor.ID,
		studentID:    student.ID,
		courseID:     c.ID,
		quizID:       q.ID,
		questionIDs:  questionIDs,
	}
}

func countWhere(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("contagem falhou: %v", err)
	}
	return n
}

// countOrphanAnswers conta respostas cuja alternativa não existe mais. O
// invariante do banco é que esse número seja sempre zero, antes e depois
// de qualquer exclusão.
func countOrphanAnswers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&StudentAnswer{}).
		Joins("LEFT JOIN answer_options ON answer_options.id = student_answers.answer_option_id").
		Where("answer_options.id IS NULL").
		Count(&n).Error; err != nil {
		t.Fatalf("contagem de respostas órfãs falhou: %v", err)
	}
	return n
}

func TestDeleteCascadePostgres(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()
	db := openTestDB(t, dsn)

	t.Run("RestrictBlocksDirectQuestionDelete", func(t *testing.T) {
		seeded := seedQuizTree(t, db)

		err := db.Delete(&Question{}, "id = ?", seeded.questionIDs[0]).Error
		if err == nil {
			t.Fatal("apagar pergunta com respostas registradas deveria violar a FK, mas passou")
		}
		if !errors.Is(err, gorm.ErrForeignKeyViolated) {
			t.Errorf("esperava gorm.ErrForeignKeyViolated, obteve %v", err)
		}
	})

	t.Run("QuizDeleteLeavesNoOrphans", func(t *testing.T) {
		seeded := seedQuizTree(t, db)
		other := seedQuizTree(t, db)
		repo := NewRepository(db)

		if got := countWhere(t, db, &StudentAnswer{}, "question_id IN ?", seeded.questionIDs); got != 2 {
			t.Fatalf("seed deveria ter 2 respostas, obteve %d", got)
		}

		if err := repo.DeleteCascade(seeded.quizID); err != nil {
			t.Fatalf("DeleteCascade falhou: %v", err)
		}

		if got := countWhere(t, db, &Quiz{}, "id = ?", seeded.quizID); got != 0 {
			t.Error("quiz deveria ter sido removido")
		}
		if got := countWhere(t, db, &Question{}, "quiz_id = ?", seeded.quizID); got != 0 {
			t.Errorf("perguntas do quiz deveriam ter sido removidas, restaram %d", got)
		}
		if got := countWhere(t, db, &StudentAnswer{}, "question_id IN ?", seeded.questionIDs); got != 0 {
			t.Errorf("respostas do quiz deveriam ter sido removidas, restaram %d", got)
		}
		if got := countOrphanAnswers(t, db); got != 0 {
			t.Errorf("nenhuma resposta órfã deveria sobrar após a exclusão, obteve %d", got)
		}

		// o quiz vizinho segue intacto
		if got := countWhere(t, db, &StudentAnswer{}, "question_id IN ?", other.questionIDs); got != 2 {
			t.Errorf("respostas de outro quiz não deveriam ser afetadas, restaram %d", got)
		}
	})

	t.Run("CourseDeleteEmptiesSubtree", func(t *testing.T) {
		seeded := seedQuizTree(t, db)
		if err := db.Create(&module.Module{Title: "Introdução", CourseID: seeded.courseID}).Error; err != nil {
			t.Fatalf("falha ao criar módulo: %v", err)
		}
		if err := db.Create(&material.Material{Title: "Apostila", CourseID: seeded.courseID}).Error; err != nil {
			t.Fatalf("falha ao criar material: %v", err)
		}

		if err := course.NewRepository(db).DeleteCascade(seeded.courseID); err != nil {
			t.Fatalf("DeleteCascade do curso falhou: %v", err)
		}

		if got := countWhere(t, db, &course.Course{}, "id = ?", seeded.courseID); got != 0 {
			t.Error("curso deveria ter sido removido")
		}
		if got := countWhere(t, db, &Quiz{}, "course_id = ?", seeded.courseID); got != 0 {
			t.Errorf("quizzes do curso deveriam ter sido removidos, restaram %d", got)
		}
		if got := countWhere(t, db, &StudentAnswer{}, "question_id IN ?", seeded.questionIDs); got != 0 {
			t.Errorf("respostas do curso deveriam ter sido removidas, restaram %d", got)
		}
		if got := countWhere(t, db, &enrollment.Enrollment{}, "course_id = ?", seeded.courseID); got != 0 {
			t.Errorf("matrículas do curso deveriam ter sido removidas, restaram %d", got)
		}
		if got := countWhere(t, db, &module.Module{}, "course_id = ?", seeded.courseID); got != 0 {
			t.Errorf("módulos do curso deveriam ter sido removidos, restaram %d", got)
		}
		if got := countWhere(t, db, &material.Material{}, "course_id = ?", seeded.courseID); got != 0 {
			t.Errorf("materiais do curso deveriam ter sido removidos, restaram %d", got)
		}
		if got := countOrphanAnswers(t, db); got != 0 {
			t.Errorf("nenhuma resposta órfã deveria sobrar após a exclusão, obteve %d", got)
		}

		// usuários são diretório externo e nunca caem junto com o curso
		if got := countWhere(t, db, &user.User{}, "id IN ?", []uuid.UUID{seeded.instructorID, seeded.studentID}); got != 2 {
			t.Errorf("usuários não deveriam ser removidos com o curso, restaram %d", got)
		}
	})
}
