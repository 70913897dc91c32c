package submission

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/quiz"
	"github.com/saulo-duarte/lms-lambda/internal/user"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadySubmitted  = errors.New("quiz already submitted")
	ErrNoValidSelections = errors.New("no valid selections")
	ErrNotSubmitted      = errors.New("no submission found")
)

type SubmissionService interface {
	CanSubmit(ctx context.Context, caller user.Principal, quizID uuid.UUID) (bool, error)
	Submit(ctx context.Context, caller user.Principal, quizID uuid.UUID, selections map[uuid.UUID]uuid.UUID) (*ScoreResult, error)
	// Result recomputes the caller's own score from the persisted rows.
	Result(ctx context.Context, caller user.Principal, quizID uuid.UUID) (*ScoreResult, error)
	Report(ctx context.Context, caller user.Principal, quizID uuid.UUID) ([]*ReportRow, error)
}

type submissionService struct {
	repo           SubmissionRepository
	quizRepo       quiz.QuizRepository
	courseRepo     course.CourseRepository
	enrollmentRepo enrollment.EnrollmentRepository
}

func NewService(repo SubmissionRepository, quizRepo quiz.QuizRepository, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) SubmissionService {
	return &submissionService{
		repo:           repo,
		quizRepo:       quizRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score*100) / float64(total)))
}

// eligibleQuiz loads the quiz and checks the student may attempt it:
// the quiz must be attached to a course the student is enrolled in.
func (s *submissionService) eligibleQuiz(caller user.Principal, quizID uuid.UUID) (*quiz.Quiz, error) {
	if caller.Role != user.RoleStudent {
		return nil, ErrForbidden
	}

	q, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	if q.CourseID == nil {
		return nil, ErrForbidden
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(caller.ID, *q.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrForbidden
	}
	return q, nil
}

func (s *submissionService) CanSubmit(ctx context.Context, caller user.Principal, quizID uuid.UUID) (bool, error) {
	log := config.WithContext(ctx)

	if _, err := s.eligibleQuiz(caller, quizID); err != nil {
		return false, err
	}

	taken, err := s.repo.HasSubmission(caller.ID, quizID)
	if err != nil {
		log.WithError(err).Error("Failed to check for prior submission")
		return false, err
	}
	return !taken, nil
}

func (s *submissionService) Submit(ctx context.Context, caller user.Principal, quizID uuid.UUID, selections map[uuid.UUID]uuid.UUID) (*ScoreResult, error) {
	log := config.WithContext(ctx)

	q, err := s.eligibleQuiz(caller, quizID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.HasSubmission(caller.ID, quizID)
	if err != nil {
		log.WithError(err).Error("Failed to check for prior submission")
		return nil, err
	}
	if taken {
		return nil, ErrAlreadySubmitted
	}

	// Walk the quiz's own questions so selections referencing foreign or
	// stale questions/options are dropped rather than failing the call.
	var answers []*quiz.StudentAnswer
	score := 0
	for _, question := range q.Questions {
		optionID, ok := selections[question.ID]
		if !ok {
			continue
		}

		var selected *quiz.AnswerOption
		for i := range question.AnswerOptions {
			if question.AnswerOptions[i].ID == optionID {
				selected = &question.AnswerOptions[i]
				break
			}
		}
		if selected == nil {
			continue
		}

		answers = append(answers, &quiz.StudentAnswer{
			StudentID:      caller.ID,
			QuestionID:     question.ID,
			AnswerOptionID: selected.ID,
		})
		if selected.IsCorrect {
			score++
		}
	}

	if len(answers) == 0 {
		// Without at least one persisted row there would be no durable
		// record of the attempt, so an all-invalid submission is rejected
		// instead of silently succeeding.
		return nil, ErrNoValidSelections
	}

	if err := s.repo.SaveAnswers(answers); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent submit of the same attempt
			log.WithFields(map[string]interface{}{
				"student_id": caller.ID,
				"quiz_id":    quizID,
			}).Warn("Concurrent duplicate submission rejected")
			return nil, ErrAlreadySubmitted
		}
		log.WithError(err).Error("Failed to persist student answers")
		return nil, err
	}

	total := len(q.Questions)
	result := &ScoreResult{
		Score:      score,
		Total:      total,
		Percentage: percentage(score, total),
	}

	log.WithFields(map[string]interface{}{
		"student_id": caller.ID,
		"quiz_id":    quizID,
		"score":      result.Score,
		"total":      result.Total,
	}).Info("Quiz submitted successfully")
	return result, nil
}

func (s *submissionService) Result(ctx context.Context, caller user.Principal, quizID uuid.UUID) (*ScoreResult, error) {
	log := config.WithContext(ctx)

	q, err := s.eligibleQuiz(caller, quizID)
	if err != nil {
		return nil, err
	}

	answers, err := s.repo.ListByQuizAndStudent(quizID, caller.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load student answers")
		return nil, err
	}
	if len(answers) == 0 {
		return nil, ErrNotSubmitted
	}

	score := 0
	for _, a := range answers {
		if a.AnswerOption.IsCorrect {
			score++
		}
	}

	total := len(q.Questions)
	return &ScoreResult{
		Score:      score,
		Total:      total,
		Percentage: percentage(score, total),
	}, nil
}

func (s *submissionService) Report(ctx context.Context, caller user.Principal, quizID uuid.UUID) ([]*ReportRow, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to find quiz for report")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	if err := s.authorizeReport(caller, q); err != nil {
		return nil, err
	}

	// An unattached quiz has no enrolled students, hence an empty report.
	if q.CourseID == nil {
		return []*ReportRow{}, nil
	}

	answers, err := s.repo.ListByQuizAndCourse(quizID, *q.CourseID)
	if err != nil {
		log.WithError(err).Error("Failed to load answers for report")
		return nil, err
	}

	total := len(q.Questions)
	scores := make(map[uuid.UUID]int)
	order := make([]uuid.UUID, 0)
	for _, a := range answers {
		if _, seen := scores[a.StudentID]; !seen {
			order = append(order, a.StudentID)
			scores[a.StudentID] = 0
		}
		if a.AnswerOption.IsCorrect {
			scores[a.StudentID]++
		}
	}

	rows := make([]*ReportRow, 0, len(order))
	for _, studentID := range order {
		score := scores[studentID]
		rows = append(rows, &ReportRow{
			StudentID:  studentID,
			Score:      score,
			Total:      total,
			Percentage: percentage(score, total),
		})
	}
	return rows, nil
}

func (s *submissionService) authorizeReport(caller user.Principal, q *quiz.Quiz) error {
	switch caller.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleInstructor:
		if q.CourseID == nil {
			return ErrForbidden
		}
		c, err := s.courseRepo.FindByID(*q.CourseID)
		if err != nil {
			return err
		}
		if c == nil || c.InstructorID != caller.ID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
