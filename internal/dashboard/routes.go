package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/admin", h.AdminStats)
	r.Get("/instructor", h.InstructorHome)
	r.Get("/student", h.StudentHome)
	return r
}
