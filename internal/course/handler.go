package course

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
	service CourseService
}

func NewHandler(service CourseService) *Handler {
	return &Handler{service: service}
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
	case errors.Is(err, ErrCourseNotFound):
		http.Error(w, "course not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidInstructor):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CreateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Create(r.Context(), caller, dto)
	if err != nil {
		log.WithError(err).Error("Failed to create course")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.service.Get(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courses, err := h.service.List(r.Context(), caller)
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, courses)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto UpdateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Update(r.Context(), caller, id, dto)
	if err != nil {
		log.WithError(err).Error("Failed to update course")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		log.WithError(err).Error("Failed to delete course")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
