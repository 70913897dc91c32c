package auth

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/lms-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Logout expires the session cookie the middleware reads. Tokens are
// stateless, so a copy kept elsewhere (e.g. a stored Bearer token)
// stays valid until it expires on its own.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	config.WithContext(r.Context()).Info("Session cookie cleared")
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
