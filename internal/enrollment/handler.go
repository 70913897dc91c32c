package enrollment

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
	service EnrollmentService
}

func NewHandler(service EnrollmentService) *Handler {
	return &Handler{service: service}
}

func callerFromRequest(r *http.Request) (user.Principal, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return user.Principal{}, err
	}
	return user.PrincipalFromClaims(claims)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	enrollments, err := h.service.List(r.Context(), caller)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		log.WithError(err).Error("Failed to list enrollments")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, enrollments)
}

func (h *Handler) ReconcileRoster(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "courseID"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	var dto ReconcileRosterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Reconcile(r.Context(), caller, courseID, dto.StudentIDs); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, ErrCourseNotFound):
			http.Error(w, "course does not exist", http.StatusBadRequest)
		case errors.Is(err, ErrReconcileConflict):
			// retryable: the caller should re-read the roster and resubmit
			http.Error(w, "roster changed concurrently, retry", http.StatusConflict)
		default:
			log.WithError(err).Error("Failed to reconcile roster")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "roster reconciled successfully",
	})
}
