package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/auth"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func callerFromRequest(r *http.Request) (user.Principal, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return user.Principal{}, err
	}
	return user.PrincipalFromClaims(claims)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrQuizNotFound):
		http.Error(w, "quiz not found", http.StatusNotFound)
	case errors.Is(err, ErrQuestionNotFound):
		http.Error(w, "question not found", http.StatusNotFound)
	case errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrInvalidQuizTitle),
		errors.Is(err, ErrInvalidQuestionText),
		errors.Is(err, ErrInvalidOptionText):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("Usuário não autenticado para criar quiz")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para criar quiz")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.CreateQuiz(r.Context(), caller, dto)
	if err != nil {
		log.WithError(err).Error("Erro ao criar quiz")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("Usuário não autenticado")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}

	q, err := h.service.Get(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if caller.Role == user.RoleStudent {
		config.JSON(w, http.StatusOK, NewStudentQuizView(q))
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("Usuário não autenticado para listar quizzes")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizzes, err := h.service.ListVisible(r.Context(), caller)
	if err != nil {
		log.WithError(err).Error("Erro ao listar quizzes")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("Usuário não autenticado para adicionar pergunta")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}

	var dto AddQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para adicionar pergunta")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	question, err := h.service.AddQuestion(r.Context(), caller, quizID, dto)
	if err != nil {
		log.WithError(err).Error("Erro ao adicionar pergunta ao quiz")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, question)
}

func (h *Handler) AddAnswerOption(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("Usuário não autenticado para adicionar alternativa")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	questionID, err := uuid.Parse(chi.URLParam(r, "questionID"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}

	var dto AddAnswerOptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para adicionar alternativa")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	option, err := h.service.AddAnswerOption(r.Context(), caller, questionID, dto)
	if err != nil {
		log.WithError(err).Error("Erro ao adicionar alternativa")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, option)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("Usuário não autenticado para deletar quiz")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), caller, quizID); err != nil {
		log.WithError(err).Error("Erro ao deletar quiz")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}
