package dashboard

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/lms-lambda/internal/auth"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

type Handler struct {
	service DashboardService
}

func NewHandler(service DashboardService) *Handler {
	return &Handler{service: service}
}

func callerFromRequest(r *http.Request) (user.Principal, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return user.Principal{}, err
	}
	return user.PrincipalFromClaims(claims)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.AdminStats(r.Context(), caller)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		log.WithError(err).Error("Failed to build admin stats")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) InstructorHome(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	home, err := h.service.InstructorHome(r.Context(), caller)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		log.WithError(err).Error("Failed to build instructor home")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, home)
}

func (h *Handler) StudentHome(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, err := callerFromRequest(r)
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	home, err := h.service.StudentHome(r.Context(), caller)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		log.WithError(err).Error("Failed to build student home")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, home)
}
