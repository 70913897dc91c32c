package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

var (
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrCourseNotFound      = errors.New("course does not exist")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidQuizTitle    = errors.New("quiz title must not be blank")
	ErrInvalidQuestionText = errors.New("question text must not be blank")
	ErrInvalidOptionText   = errors.New("answer option text must not be blank")
)

type QuizService interface {
	CreateQuiz(ctx context.Context, caller user.Principal, dto CreateQuizDTO) (*Quiz, error)
	Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Quiz, error)
	ListVisible(ctx context.Context, caller user.Principal) ([]*Quiz, error)
	AddQuestion(ctx context.Context, caller user.Principal, quizID uuid.UUID, dto AddQuestionDTO) (*Question, error)
	AddAnswerOption(ctx context.Context, caller user.Principal, questionID uuid.UUID, dto AddAnswerOptionDTO) (*AnswerOption, error)
	DeleteQuiz(ctx context.Context, caller user.Principal, quizID uuid.UUID) error
}

type quizService struct {
	repo           QuizRepository
	courseRepo     course.CourseRepository
	enrollmentRepo enrollment.EnrollmentRepository
}

func NewService(repo QuizRepository, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) QuizService {
	return &quizService{
		repo:           repo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// canAuthor reports whether the caller may change a quiz's content:
// admins always, instructors only for quizzes attached to their courses.
func (s *quizService) canAuthor(caller user.Principal, q *Quiz) (bool, error) {
	switch caller.Role {
	case user.RoleAdmin:
		return true, nil
	case user.RoleInstructor:
		if q.CourseID == nil {
			return false, nil
		}
		c, err := s.courseRepo.FindByID(*q.CourseID)
		if err != nil {
			return false, err
		}
		return c != nil && c.InstructorID == caller.ID, nil
	default:
		return false, nil
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, caller user.Principal, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)
	log.Info("Criando novo quiz...")

	if caller.Role != user.RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Usuário sem permissão para criar quiz")
		return nil, ErrForbidden
	}
	if strings.TrimSpace(dto.Title) == "" {
		return nil, ErrInvalidQuizTitle
	}
	if dto.CourseID != nil {
		c, err := s.courseRepo.FindByID(*dto.CourseID)
		if err != nil {
			log.WithError(err).Error("Erro ao buscar curso do quiz")
			return nil, err
		}
		if c == nil {
			return nil, ErrCourseNotFound
		}
	}

	q := &Quiz{
		Title:           dto.Title,
		Description:     dto.Description,
		DurationMinutes: dto.DurationMinutes,
		CourseID:        dto.CourseID,
	}
	if err := s.repo.Create(q); err != nil {
		log.WithError(err).Error("Erro ao criar quiz")
		return nil, err
	}

	log.WithField("quiz_id", q.ID).Info("Quiz criado com sucesso")
	return q, nil
}

func (s *quizService) Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Quiz, error) {
	log := config.WithContext(ctx)

	q, err := s.repo.GetByID(id)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar quiz")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	visibility, err := s.visibilityFor(caller.Role)
	if err != nil {
		return nil, err
	}
	ok, err := visibility.CanAccess(caller.ID, q)
	if err != nil {
		log.WithError(err).Error("Erro ao verificar acesso ao quiz")
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return q, nil
}

func (s *quizService) ListVisible(ctx context.Context, caller user.Principal) ([]*Quiz, error) {
	log := config.WithContext(ctx)

	visibility, err := s.visibilityFor(caller.Role)
	if err != nil {
		return nil, err
	}

	quizzes, err := visibility.List(caller.ID)
	if err != nil {
		log.WithError(err).Error("Erro ao listar quizzes visíveis")
		return nil, err
	}
	return quizzes, nil
}

func (s *quizService) AddQuestion(ctx context.Context, caller user.Principal, quizID uuid.UUID, dto AddQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)
	log.Info("Adicionando nova pergunta ao quiz...")

	if strings.TrimSpace(dto.Text) == "" {
		return nil, ErrInvalidQuestionText
	}

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar quiz")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	ok, err := s.canAuthor(caller, q)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.WithField("caller_id", caller.ID).Warn("Usuário sem permissão para editar quiz")
		return nil, ErrForbidden
	}

	question := &Question{
		QuizID: q.ID,
		Text:   dto.Text,
	}
	if err := s.repo.AddQuestion(question); err != nil {
		log.WithError(err).Error("Erro ao adicionar pergunta")
		return nil, err
	}

	log.WithField("question_id", question.ID).Info("Pergunta adicionada com sucesso")
	return question, nil
}

func (s *quizService) AddAnswerOption(ctx context.Context, caller user.Principal, questionID uuid.UUID, dto AddAnswerOptionDTO) (*AnswerOption, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(dto.Text) == "" {
		return nil, ErrInvalidOptionText
	}

	question, err := s.repo.GetQuestion(questionID)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar pergunta")
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	q, err := s.repo.GetByID(question.QuizID)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar quiz da pergunta")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	ok, err := s.canAuthor(caller, q)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.WithField("caller_id", caller.ID).Warn("Usuário sem permissão para editar quiz")
		return nil, ErrForbidden
	}

	option := &AnswerOption{
		QuestionID: question.ID,
		Text:       dto.Text,
		IsCorrect:  dto.IsCorrect,
	}
	if err := s.repo.AddAnswerOption(option); err != nil {
		log.WithError(err).Error("Erro ao adicionar alternativa")
		return nil, err
	}

	log.WithField("answer_option_id", option.ID).Info("Alternativa adicionada com sucesso")
	return option, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, caller user.Principal, quizID uuid.UUID) error {
	log := config.WithContext(ctx)
	log.Info("Deletando quiz...")

	if caller.Role != user.RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Usuário sem permissão para deletar quiz")
		return ErrForbidden
	}

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar quiz")
		return err
	}
	if q == nil {
		return ErrQuizNotFound
	}

	if err := s.repo.DeleteCascade(quizID); err != nil {
		log.WithError(err).Error("Erro ao deletar quiz")
		return err
	}

	log.WithField("quiz_id", quizID).Info("Quiz deletado com sucesso")
	return nil
}
